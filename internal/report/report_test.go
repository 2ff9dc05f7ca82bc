package report

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/mrsinham/quantitest/internal/assets"
	"github.com/mrsinham/quantitest/internal/media"
	"github.com/mrsinham/quantitest/internal/validate"
	"github.com/mrsinham/quantitest/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

func testStore() *assets.Store {
	return assets.NewStoreFS("testdata", fstest.MapFS{
		assets.ReportTemplate: {Data: []byte("%PDF-1.4 template")},
	})
}

func testImage(t *testing.T) *media.Image {
	t.Helper()
	src := image.NewRGBA(image.Rect(0, 0, 6, 4))
	for x := 0; x < 6; x++ {
		src.Set(x, 1, color.RGBA{255, 255, 255, 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))
	img, err := media.Parse("reaction.png", buf.Bytes(), media.DefaultLimits())
	require.NoError(t, err)
	return img
}

func completedState() *workflow.State {
	s := workflow.NewState("session-1")
	s.Set(workflow.FieldKitChecked, []string{"Quanti-Wells", "Droppers"})
	s.Set(workflow.FieldWellsReady, true)
	s.Set(workflow.FieldLabelsDone, true)
	s.Set(workflow.FieldAllergenLabels, "Cat, Dog, ,Dust")
	s.Set(workflow.FieldSequence, "A, B, C, D")
	s.Set(workflow.FieldAlignment, "Correct")
	s.Set(workflow.FieldSuitability, "Suitable (flat and clean)")
	s.Set(workflow.FieldLeftPressed, true)
	s.Set(workflow.FieldRightPressed, true)
	s.Set(workflow.FieldReadingComplete, true)
	s.Set(workflow.FieldMedications, "Aspirin, Antihistamines")
	return s
}

func TestTemplateSink_ExportReport(t *testing.T) {
	doc, err := TemplateSink{Store: testStore()}.ExportReport()
	require.NoError(t, err)
	assert.Equal(t, "Test_Results.pdf", doc.Filename)
	assert.Equal(t, "application/pdf", doc.MIME)
	assert.Equal(t, "%PDF-1.4 template", string(doc.Data))
}

func TestTemplateSink_Missing(t *testing.T) {
	sink := TemplateSink{Store: assets.NewStoreFS("empty", fstest.MapFS{})}
	_, err := sink.ExportReport()
	var missing *assets.MissingAssetError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, assets.ReportTemplate, missing.Name)
}

func TestTrendSeries(t *testing.T) {
	points := TrendSeries(rand.New(rand.NewPCG(1, 0)))
	require.Len(t, points, TrendDays)
	for i, p := range points {
		assert.Equal(t, i+1, p.Day)
		assert.GreaterOrEqual(t, p.ReactionLevel, 1)
		assert.LessOrEqual(t, p.ReactionLevel, 9)
	}

	again := TrendSeries(rand.New(rand.NewPCG(1, 0)))
	assert.Equal(t, points, again, "same seed should give the same series")
}

func TestLevelBand(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, "Low (1-3)"},
		{3, "Low (1-3)"},
		{4, "Moderate (4-6)"},
		{6, "Moderate (4-6)"},
		{7, "High (7-9)"},
		{9, "High (7-9)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelBand(tt.level), "level %d", tt.level)
	}
}

func TestFromState(t *testing.T) {
	s := FromState(completedState(), validate.DefaultProtocol(), nil)

	assert.Equal(t, "session-1", s.SessionID)
	assert.Equal(t, []string{"Cat", "Dog", "Dust"}, s.AllergenLabels)
	assert.Equal(t, 4, s.KitTotal)
	assert.True(t, s.Medication.Interferes)
	assert.Equal(t, []string{"aspirin", "antihistamines"}, s.Medication.Parsed)
	assert.Zero(t, s.Issues())
}

func TestFromState_Issues(t *testing.T) {
	st := workflow.NewState("s")
	st.Set(workflow.FieldSequence, "D, C, B, A")
	st.Set(workflow.FieldAlignment, "Incorrect")

	s := FromState(st, validate.DefaultProtocol(), nil)
	// wells, sequence, alignment, presses and reading window all fail
	assert.Equal(t, 5, s.Issues())
	assert.False(t, s.Medication.Interferes)
}

func TestWriteMarkdown(t *testing.T) {
	trend := TrendSeries(rand.New(rand.NewPCG(7, 0)))
	s := FromState(completedState(), validate.DefaultProtocol(), trend)

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, s))
	out := buf.String()

	for _, want := range []string{
		"# Quanti-Test Results",
		"session-1",
		"## Procedure",
		"Sequence matches the standard allergen sequence!",
		"[!WARNING]",
		"Erythema >5mm",
		"Wheal >2mm",
		"follow up with a specialist",
		"## Data Trends",
		"```mermaid",
		"pie",
	} {
		assert.Contains(t, out, want)
	}
}

func TestWriteMarkdown_NoMedications(t *testing.T) {
	st := workflow.NewState("s")
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, FromState(st, validate.DefaultProtocol(), nil)))
	assert.Contains(t, buf.String(), "No medications recorded.")
	assert.NotContains(t, buf.String(), "## Data Trends")
}

func TestNewUID(t *testing.T) {
	a, b := NewUID(), NewUID()
	assert.True(t, strings.HasPrefix(a, "2.25."))
	assert.NotEqual(t, a, b)
	assert.LessOrEqual(t, len(a), 64)
}

func TestCaptureDataset_Invalid(t *testing.T) {
	_, err := CaptureDataset(Capture{}, nil, 0, 0)
	assert.Error(t, err)

	_, err = CaptureDataset(Capture{}, make([]uint8, 5), 2, 2)
	assert.Error(t, err)
}

func TestBundle_Write(t *testing.T) {
	dir := t.TempDir()
	b := Bundle{
		Sink:     TemplateSink{Store: testStore()},
		Summary:  FromState(completedState(), validate.DefaultProtocol(), nil),
		Reaction: testImage(t),
	}

	paths, err := b.Write(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	pdf, err := os.ReadFile(filepath.Join(dir, ResultsFilename))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 template", string(pdf))

	md, err := os.ReadFile(filepath.Join(dir, SummaryFilename))
	require.NoError(t, err)
	assert.Contains(t, string(md), "Quanti-Test Results")

	ds, err := dicom.ParseFile(filepath.Join(dir, CaptureFilename), nil)
	require.NoError(t, err)

	rows, err := ds.FindElementByTag(tag.Rows)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, dicom.MustGetInts(rows.Value))

	cols, err := ds.FindElementByTag(tag.Columns)
	require.NoError(t, err)
	assert.Equal(t, []int{6}, dicom.MustGetInts(cols.Value))

	class, err := ds.FindElementByTag(tag.SOPClassUID)
	require.NoError(t, err)
	assert.Equal(t, []string{SecondaryCaptureSOPClassUID}, dicom.MustGetStrings(class.Value))

	patient, err := ds.FindElementByTag(tag.PatientID)
	require.NoError(t, err)
	assert.Equal(t, []string{"session-1"}, dicom.MustGetStrings(patient.Value))
}

func TestBundle_WriteWithoutReaction(t *testing.T) {
	b := Bundle{
		Sink:    TemplateSink{Store: testStore()},
		Summary: FromState(workflow.NewState("s"), validate.DefaultProtocol(), nil),
	}
	paths, err := b.Write(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestBundle_MissingTemplate(t *testing.T) {
	b := Bundle{
		Sink:    TemplateSink{Store: assets.NewStoreFS("empty", fstest.MapFS{})},
		Summary: FromState(workflow.NewState("s"), validate.DefaultProtocol(), nil),
	}
	_, err := b.Write(context.Background(), t.TempDir())
	var missing *assets.MissingAssetError
	assert.True(t, errors.As(err, &missing))
}
