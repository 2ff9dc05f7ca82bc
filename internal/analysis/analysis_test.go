package analysis

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/mrsinham/quantitest/internal/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKitVerifier_AlwaysVerified(t *testing.T) {
	var p Provider = KitVerifier{}

	for i := 0; i < 5; i++ {
		res, err := p.Analyze(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, StatusVerified, res.Status)
		assert.Equal(t, "All items are verified and present in the kit!", res.Suggestion)
	}
}

func TestKitVerifier_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := KitVerifier{}.Analyze(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTemplateMatcher_Outcomes(t *testing.T) {
	m := NewSeededTemplateMatcher(42)

	counts := map[Status]int{}
	for i := 0; i < 1000; i++ {
		res, err := m.Analyze(context.Background(), nil)
		require.NoError(t, err)

		switch res.Status {
		case StatusCorrectlyPlaced:
			assert.Equal(t, "No adjustment needed.", res.Suggestion)
		case StatusMisaligned:
			assert.Equal(t, "Reposition stickers for accuracy.", res.Suggestion)
		default:
			t.Fatalf("unexpected status %v", res.Status)
		}
		counts[res.Status]++
	}

	// Uniform over two outcomes
	assert.InDelta(t, 500, counts[StatusCorrectlyPlaced], 80)
	assert.InDelta(t, 500, counts[StatusMisaligned], 80)
}

func TestTemplateMatcher_Reproducible(t *testing.T) {
	a := NewSeededTemplateMatcher(7)
	b := NewSeededTemplateMatcher(7)

	for i := 0; i < 20; i++ {
		ra, _ := a.Analyze(context.Background(), nil)
		rb, _ := b.Analyze(context.Background(), nil)
		assert.Equal(t, ra, rb, "draw %d", i)
	}
}

func TestTemplateMatcher_NilSource(t *testing.T) {
	m := NewTemplateMatcher(nil)
	res, err := m.Analyze(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, []Status{StatusCorrectlyPlaced, StatusMisaligned}, res.Status)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Verified", StatusVerified.String())
	assert.Equal(t, "Correctly Placed", StatusCorrectlyPlaced.String())
	assert.Equal(t, "Misaligned", StatusMisaligned.String())
	assert.Equal(t, "Suitable", StatusSuitable.String())
	assert.Equal(t, "Unsuitable", StatusUnsuitable.String())
}

func TestAssistant_Reply(t *testing.T) {
	a := Assistant{}

	reply, ok := a.Reply("hello")
	assert.True(t, ok)
	assert.Equal(t, "Hi! I'm your Quanti-Test Assistant 🤖. How can I help you today?", reply)

	reply, ok = a.Reply("what does a wheal of 3mm mean?")
	assert.True(t, ok)
	assert.Equal(t, Greeting, reply)

	_, ok = a.Reply("")
	assert.False(t, ok)
	_, ok = a.Reply("   ")
	assert.False(t, ok)
}

func TestReactionImager_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 600, 400))))
	img, err := media.Parse("reaction.png", buf.Bytes(), media.DefaultLimits())
	require.NoError(t, err)

	r, err := ReactionImager{Width: 300}.Render(context.Background(), img)
	require.NoError(t, err)
	assert.Equal(t, 300, r.Width)
	assert.Equal(t, 200, r.Height)
	assert.Same(t, img, r.Input)

	out, err := media.Parse("out.png", r.Output, media.DefaultLimits())
	require.NoError(t, err)
	assert.Equal(t, 300, out.Width)

	_, err = ReactionImager{}.Render(context.Background(), nil)
	assert.Error(t, err)
}

func TestSurfaceResult(t *testing.T) {
	assert.Equal(t, StatusSuitable, SurfaceResult(true).Status)
	assert.Equal(t, StatusUnsuitable, SurfaceResult(false).Status)
	assert.True(t, SurfaceResult(true).Status.Positive())
}
