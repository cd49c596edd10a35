// Package wizard drives the four-step appeal creation flow: pick a
// platform, paste the notice, fill in details, and read the generated
// letter. Each forward transition is gated on the current step being
// complete; back navigation keeps entered data.
package wizard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gigshield/gigshield/internal/analysis"
	"github.com/gigshield/gigshield/internal/evidence"
	"github.com/gigshield/gigshield/internal/gigshield"
)

// Step identifies one of the four wizard steps.
type Step int

const (
	StepPlatform Step = iota + 1
	StepNotice
	StepDetails
	StepGenerated
)

func (s Step) String() string {
	switch s {
	case StepPlatform:
		return "Platform"
	case StepNotice:
		return "Notice"
	case StepDetails:
		return "Details"
	case StepGenerated:
		return "Generated"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

const (
	defaultTone         = "professional"
	defaultDeadlineDays = 10
)

// Generator produces an appeal letter from collected wizard fields.
type Generator interface {
	GenerateAppeal(ctx context.Context, req gigshield.AppealRequest) (*gigshield.GenerateResult, error)
}

// Uploader submits evidence files, optionally tagged with an appeal id.
type Uploader interface {
	UploadEvidence(ctx context.Context, appealID, filename, contentType string, r io.Reader) (*gigshield.UploadResult, error)
}

// Controller holds the wizard's step and field state.
type Controller struct {
	step Step

	Platform        string
	Notice          string
	NoticeFile      string
	AccountTenure   string
	CurrentRating   string
	CompletionRate  string
	TotalDeliveries string
	UserStory       string
	Evidence        string
	UserState       string
	Tone            string
	DeadlineDays    int

	Staged evidence.Staging

	Letter   string
	AppealID string

	gen    Generator
	upload Uploader
	logger *slog.Logger
}

// New returns a controller at step 1 with empty fields.
func New(gen Generator, upload Uploader) *Controller {
	return &Controller{
		step:   StepPlatform,
		gen:    gen,
		upload: upload,
		logger: slog.Default(),
	}
}

// Seed prefills the wizard from a prior notice analysis. Only the
// fields the analysis actually covers are set; everything else stays
// empty for the user to fill in.
func (c *Controller) Seed(notice string, result *analysis.AnalysisResult) {
	c.Notice = notice
	if result == nil {
		return
	}
	if result.Platform != "" && result.Platform != analysis.UnknownPlatform {
		c.Platform = result.Platform
	}
	if result.DaysRemaining > 0 {
		c.DeadlineDays = result.DaysRemaining
	}
}

// Step returns the current step.
func (c *Controller) Step() Step {
	return c.step
}

// CanAdvance reports whether the current step's completeness predicate
// holds. Step 4 is terminal.
func (c *Controller) CanAdvance() bool {
	switch c.step {
	case StepPlatform:
		return c.Platform != ""
	case StepNotice:
		return strings.TrimSpace(c.Notice) != "" || c.NoticeFile != ""
	case StepDetails:
		return true
	default:
		return false
	}
}

// Advance moves forward one step if the current step is complete. It
// returns false when the gate does not hold. Advancing from the
// details step is handled by Generate, not here.
func (c *Controller) Advance() bool {
	if c.step >= StepDetails || !c.CanAdvance() {
		return false
	}
	c.step++
	return true
}

// Back moves to the previous step unconditionally, keeping all
// entered data.
func (c *Controller) Back() bool {
	if c.step <= StepPlatform {
		return false
	}
	c.step--
	return true
}

// Reset clears every field and returns to step 1.
func (c *Controller) Reset() {
	gen, upload, logger := c.gen, c.upload, c.logger
	*c = Controller{step: StepPlatform, gen: gen, upload: upload, logger: logger}
}

// BuildRequest assembles the generation request from collected fields.
// Tone defaults to professional and the deadline to ten days when the
// user supplied neither and no analysis seeded them.
func (c *Controller) BuildRequest() gigshield.AppealRequest {
	req := gigshield.AppealRequest{
		Platform:           c.Platform,
		DeactivationReason: c.Notice,
		UserStory:          c.UserStory,
		AccountTenure:      c.AccountTenure,
		CurrentRating:      c.CurrentRating,
		CompletionRate:     c.CompletionRate,
		TotalDeliveries:    c.TotalDeliveries,
		AppealTone:         c.Tone,
		UserState:          c.UserState,
		Evidence:           c.Evidence,
		DeadlineDays:       c.DeadlineDays,
	}
	if c.NoticeFile != "" {
		req.DeactivationReason = strings.TrimSpace(req.DeactivationReason + "\n\n[Uploaded notice: " + c.NoticeFile + "]")
	}
	if files := c.Staged.Files(); len(files) > 0 {
		var refs []string
		for _, f := range files {
			refs = append(refs, f.Name)
		}
		note := "[Attached files: " + strings.Join(refs, ", ") + "]"
		if req.Evidence != "" {
			req.Evidence += "\n" + note
		} else {
			req.Evidence = note
		}
	}
	if req.AppealTone == "" {
		req.AppealTone = defaultTone
	}
	if req.DeadlineDays == 0 {
		req.DeadlineDays = defaultDeadlineDays
	}
	return req
}

// Generate calls the letter generation service with everything
// collected so far. On success the controller stores the letter and
// appeal id and moves to the final step; on failure it stays at the
// details step with all data intact.
func (c *Controller) Generate(ctx context.Context) error {
	if c.step != StepDetails {
		return fmt.Errorf("cannot generate from step %s", c.step)
	}

	result, err := c.gen.GenerateAppeal(ctx, c.BuildRequest())
	if err != nil {
		return err
	}

	c.Letter = result.AppealLetter
	c.AppealID = result.AppealID
	c.step = StepGenerated
	return nil
}

// AttachStaged re-submits files staged before the appeal existed,
// tagged with the now-known appeal id. Individual failures are logged
// and skipped; the generated letter is never rolled back. Files that
// upload successfully are removed from staging.
func (c *Controller) AttachStaged(ctx context.Context) {
	if c.AppealID == "" || c.upload == nil {
		return
	}
	files := append([]evidence.StagedFile(nil), c.Staged.Files()...)
	for _, f := range files {
		file, err := os.Open(f.Path)
		if err != nil {
			c.logger.Warn("skipping staged evidence", "file", f.Name, "error", err)
			continue
		}
		_, err = c.upload.UploadEvidence(ctx, c.AppealID, f.Name, f.ContentType, file)
		file.Close()
		if err != nil {
			c.logger.Warn("evidence upload failed", "file", f.Name, "appeal", c.AppealID, "error", err)
			continue
		}
		c.Staged.Remove(f.ID)
	}
}
