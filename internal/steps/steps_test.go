package steps

import (
	"errors"
	"testing"
)

func TestDefault_Titles(t *testing.T) {
	r := Default()

	if r.Count() != 10 {
		t.Fatalf("Count() = %d, want 10", r.Count())
	}

	tests := []struct {
		index    int
		expected string
	}{
		{Welcome, "Home/Welcome Page"},
		{VerifyKit, "Verify Kit Contents"},
		{SetupWells, "Set Up Quanti-Wells"},
		{PrepareTray, "Prepare Quanti-Tray"},
		{LoadApplicators, "Load Applicators"},
		{PrepareSkin, "Prepare Skin Test Area"},
		{ApplyTest, "Apply Test"},
		{RecordResults, "Record and Analyze Results"},
		{Medication, "Manage Medication Interference"},
		{Summary, "Results Summary"},
	}

	for _, tc := range tests {
		title, err := r.TitleAt(tc.index)
		if err != nil {
			t.Errorf("TitleAt(%d) returned error: %v", tc.index, err)
		}
		if title != tc.expected {
			t.Errorf("TitleAt(%d) = %q, want %q", tc.index, title, tc.expected)
		}
	}
}

func TestTitleAt_OutOfRange(t *testing.T) {
	r := Default()

	for _, i := range []int{-1, 10, 42} {
		_, err := r.TitleAt(i)
		if err == nil {
			t.Errorf("TitleAt(%d) should return error", i)
			continue
		}
		var oor *OutOfRangeError
		if !errors.As(err, &oor) {
			t.Errorf("TitleAt(%d) error = %T, want *OutOfRangeError", i, err)
			continue
		}
		if oor.Index != i || oor.Count != 10 {
			t.Errorf("OutOfRangeError = %+v, want Index=%d Count=10", oor, i)
		}
	}
}

func TestSteps_ReturnsCopy(t *testing.T) {
	r := Default()

	s := r.Steps()
	s[0].Title = "changed"

	title, _ := r.TitleAt(0)
	if title != "Home/Welcome Page" {
		t.Errorf("registry mutated through Steps(): got %q", title)
	}
}

func TestStep_Label(t *testing.T) {
	s := Step{ID: 2, Title: "Set Up Quanti-Wells"}
	if s.Label() != "3. Set Up Quanti-Wells" {
		t.Errorf("Label() = %q", s.Label())
	}
}
