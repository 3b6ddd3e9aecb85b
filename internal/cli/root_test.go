package cli

import (
	"testing"

	"github.com/argmaplab/argmap/pkg/pipeline"
)

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2024-01-01")

	if version != "1.0.0" {
		t.Errorf("version = %q, want %q", version, "1.0.0")
	}
	if commit != "abc123" {
		t.Errorf("commit = %q, want %q", commit, "abc123")
	}
	if date != "2024-01-01" {
		t.Errorf("date = %q, want %q", date, "2024-01-01")
	}
}

func TestStageFlagsApply(t *testing.T) {
	var opts pipeline.Options
	flags := stageFlags{
		refresh:         true,
		dedupeThreshold: 0.9,
		skipBridging:    true,
		maxConclusions:  3,
		nodeSpacing:     100,
	}
	flags.apply(&opts)

	if !opts.Refresh {
		t.Error("apply() should set Refresh")
	}
	if opts.DedupeThreshold != 0.9 {
		t.Errorf("DedupeThreshold = %v, want 0.9", opts.DedupeThreshold)
	}
	if !opts.SkipBridging {
		t.Error("apply() should set SkipBridging")
	}
	if opts.Conclusions.MaxConclusions != 3 {
		t.Errorf("MaxConclusions = %d, want 3", opts.Conclusions.MaxConclusions)
	}
	if opts.Layout.NodeSpacing != 100 {
		t.Errorf("NodeSpacing = %v, want 100", opts.Layout.NodeSpacing)
	}
}

func TestStageFlagsZeroLeavesOptions(t *testing.T) {
	var opts pipeline.Options
	opts.DedupeThreshold = 0.7
	opts.Layout.LayerSpacing = 300

	var flags stageFlags
	flags.apply(&opts)

	if opts.DedupeThreshold != 0.7 {
		t.Errorf("zero flag overwrote DedupeThreshold: got %v, want 0.7", opts.DedupeThreshold)
	}
	if opts.Layout.LayerSpacing != 300 {
		t.Errorf("zero flag overwrote LayerSpacing: got %v, want 300", opts.Layout.LayerSpacing)
	}
}
