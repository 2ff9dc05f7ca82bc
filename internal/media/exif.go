package media

import (
	"sort"

	exif "github.com/dsoprea/go-exif/v3"
)

// FindingKind classifies identifying metadata found in a photo.
type FindingKind string

const (
	FindingGPS    FindingKind = "gps"
	FindingDevice FindingKind = "device"
	FindingSerial FindingKind = "serial"
	FindingAuthor FindingKind = "author"
)

// Finding is one identifying EXIF tag.
type Finding struct {
	Kind  FindingKind
	Tag   string
	Value string
}

// InspectMetadata lists EXIF tags in the photo that could identify the
// patient or the device, such as location, serial numbers and authorship.
// Photos without EXIF yield no findings.
func InspectMetadata(data []byte) []Finding {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return nil
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return nil
	}

	var findings []Finding
	for _, entry := range entries {
		var kind FindingKind
		switch entry.TagName {
		case "GPSLatitude", "GPSLongitude", "GPSLatitudeRef", "GPSLongitudeRef":
			kind = FindingGPS
		case "Make", "Model":
			kind = FindingDevice
		case "SerialNumber", "CameraSerialNumber", "BodySerialNumber", "LensSerialNumber":
			kind = FindingSerial
		case "Artist", "Author", "Copyright", "XPAuthor":
			kind = FindingAuthor
		default:
			continue
		}
		findings = append(findings, Finding{Kind: kind, Tag: entry.TagName, Value: entry.Formatted})
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Kind < findings[j].Kind
	})
	return findings
}

// HasLocation reports whether any finding places the photo geographically.
func HasLocation(findings []Finding) bool {
	for _, f := range findings {
		if f.Kind == FindingGPS {
			return true
		}
	}
	return false
}
