package report

import (
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/mrsinham/quantitest/internal/media"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/frame"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// DICOM identifiers used for the reaction capture.
const (
	SecondaryCaptureSOPClassUID = "1.2.840.10008.5.1.4.1.1.7"
	ExplicitVRLittleEndian      = "1.2.840.10008.1.2.1"
	ImplementationClassUID      = "1.2.826.0.1.3680043.8.498"
)

// Capture describes the reaction photo to be archived.
type Capture struct {
	SessionID string
	Label     string
	Taken     time.Time
}

// NewUID returns a UUID-derived DICOM UID under the 2.25 root.
func NewUID() string {
	id := uuid.New()
	n := new(big.Int).SetBytes(id[:])
	return "2.25." + n.String()
}

func mustNewElement(t tag.Tag, value interface{}) *dicom.Element {
	elem, err := dicom.NewElement(t, value)
	if err != nil {
		panic(fmt.Sprintf("failed to create element %v: %v", t, err))
	}
	return elem
}

// CaptureDataset builds an 8-bit MONOCHROME2 secondary-capture dataset from a
// decoded image.
func CaptureDataset(c Capture, pixels []uint8, width, height int) (dicom.Dataset, error) {
	if width <= 0 || height <= 0 {
		return dicom.Dataset{}, fmt.Errorf("invalid dimensions: %dx%d", width, height)
	}
	if len(pixels) != width*height {
		return dicom.Dataset{}, fmt.Errorf("pixel count %d does not match %dx%d", len(pixels), width, height)
	}

	taken := c.Taken
	if taken.IsZero() {
		taken = time.Now()
	}
	date := taken.Format("20060102")
	clock := taken.Format("150405")
	sopInstanceUID := NewUID()

	nativeFrame := frame.NewNativeFrame[uint8](8, height, width, width*height, 1)
	copy(nativeFrame.RawData, pixels)

	pixelDataInfo := dicom.PixelDataInfo{
		Frames: []*frame.Frame{
			{
				Encapsulated: false,
				NativeData:   nativeFrame,
			},
		},
	}

	ds := dicom.Dataset{Elements: []*dicom.Element{
		mustNewElement(tag.FileMetaInformationVersion, []byte{0x00, 0x01}),
		mustNewElement(tag.MediaStorageSOPClassUID, []string{SecondaryCaptureSOPClassUID}),
		mustNewElement(tag.MediaStorageSOPInstanceUID, []string{sopInstanceUID}),
		mustNewElement(tag.TransferSyntaxUID, []string{ExplicitVRLittleEndian}),
		mustNewElement(tag.ImplementationClassUID, []string{ImplementationClassUID}),
		mustNewElement(tag.SOPClassUID, []string{SecondaryCaptureSOPClassUID}),
		mustNewElement(tag.SOPInstanceUID, []string{sopInstanceUID}),
		mustNewElement(tag.StudyInstanceUID, []string{NewUID()}),
		mustNewElement(tag.SeriesInstanceUID, []string{NewUID()}),
		mustNewElement(tag.StudyDate, []string{date}),
		mustNewElement(tag.StudyTime, []string{clock}),
		mustNewElement(tag.ContentDate, []string{date}),
		mustNewElement(tag.ContentTime, []string{clock}),
		mustNewElement(tag.Modality, []string{"OT"}),
		mustNewElement(tag.ConversionType, []string{"DI"}),
		mustNewElement(tag.PatientID, []string{c.SessionID}),
		mustNewElement(tag.PatientName, []string{"Anonymous"}),
		mustNewElement(tag.StudyDescription, []string{"Quanti-Test skin prick"}),
		mustNewElement(tag.SeriesDescription, []string{c.Label}),
		mustNewElement(tag.SeriesNumber, []string{"1"}),
		mustNewElement(tag.InstanceNumber, []string{"1"}),
		mustNewElement(tag.Rows, []int{height}),
		mustNewElement(tag.Columns, []int{width}),
		mustNewElement(tag.BitsAllocated, []int{8}),
		mustNewElement(tag.BitsStored, []int{8}),
		mustNewElement(tag.HighBit, []int{7}),
		mustNewElement(tag.PixelRepresentation, []int{0}),
		mustNewElement(tag.SamplesPerPixel, []int{1}),
		mustNewElement(tag.PhotometricInterpretation, []string{"MONOCHROME2"}),
		mustNewElement(tag.PixelData, pixelDataInfo),
	}}
	return ds, nil
}

// WriteCapture decodes img and writes it to w as a DICOM secondary capture.
func WriteCapture(w io.Writer, c Capture, img *media.Image) error {
	decoded, err := img.Decode()
	if err != nil {
		return err
	}
	pixels, width, height := media.Grayscale(decoded)

	ds, err := CaptureDataset(c, pixels, width, height)
	if err != nil {
		return err
	}
	if err := dicom.Write(w, ds); err != nil {
		return fmt.Errorf("writing dicom: %w", err)
	}
	return nil
}
