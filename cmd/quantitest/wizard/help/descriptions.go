package help

// HelpText contains information about a field
type HelpText struct {
	Title       string
	Description string
	Details     string
}

// Texts contains help information for all wizard fields
var Texts = map[string]HelpText{
	"kit_checked": {
		Title:       "KIT CONTENTS",
		Description: "Tick each item you found in the box.",
		Details:     "Space toggles an item. The kit holds Quanti-Wells, Sharptest and Quicktest applicators, and droppers.",
	},
	"kit_photo": {
		Title:       "KIT PHOTO",
		Description: "Optional photo of the opened kit.",
		Details:     "Path to a PNG or JPEG file. Leave empty to skip the automated verification.",
	},
	"wells_ready": {
		Title:       "QUANTI-WELLS",
		Description: "Is the Quanti-Wells tray on a flat, clean surface?",
		Details:     "Remove the lid and check every well is empty and dry.",
	},
	"labels_done": {
		Title:       "ALLERGEN LABELS",
		Description: "Have the allergen labels been placed on the wells?",
		Details:     "Labels must follow the order printed on the tray box.",
	},
	"allergen_labels": {
		Title:       "LABEL NAMES",
		Description: "Names of the allergens you labelled, comma separated.",
		Details:     "Example: Cat, Dog, Dust mite, Birch pollen",
	},
	"tray_photo": {
		Title:       "LABELLED TRAY PHOTO",
		Description: "Optional photo of the labelled Quanti-Trays.",
		Details:     "Used to check the sticker placement against the reference template.",
	},
	"sequence": {
		Title:       "TESTING SET SEQUENCE",
		Description: "Allergen order in the wells, comma separated.",
		Details:     "Compared exactly and case-sensitively with the standard sequence, e.g. A, B, C, D",
	},
	"alignment": {
		Title:       "APPLICATOR ALIGNMENT",
		Description: "Does the T-mark side of each applicator line up with the T-end of the tray?",
		Details:     "Misaligned applicators deliver allergens to the wrong test site.",
	},
	"suitability": {
		Title:       "SKIN TEST AREA",
		Description: "Is the chosen area flat, clean and free of excessive hair?",
		Details:     "The volar forearm or the upper back are the usual sites.",
	},
	"reaction_photo": {
		Title:       "REACTION PHOTO",
		Description: "Photo of the test site after the reading window.",
		Details:     "The analysed picture is stamped with the positive reaction criteria.",
	},
	"medications": {
		Title:       "CURRENT MEDICATIONS",
		Description: "Medications taken recently, comma separated.",
		Details:     "Antihistamines, antiemetics and tranquilizers suppress skin reactions and may invalidate the test.",
	},
}
