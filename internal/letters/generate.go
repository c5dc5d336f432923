package letters

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/invitation-letters/internal/grammar"
	"github.com/jonathan/invitation-letters/internal/grouping"
	"github.com/jonathan/invitation-letters/internal/types"
	"go.uber.org/zap"
)

// Renderer turns one GroupDocument into an artifact and returns its location.
// Calls are never overlapping.
type Renderer interface {
	Render(ctx context.Context, doc types.GroupDocument) (string, error)
}

// Artifact is one rendered group document.
type Artifact struct {
	Key         types.GroupKey `json:"key"`
	Path        string         `json:"path"`
	Members     int            `json:"members"`
	Responsible int64          `json:"responsible_id,omitempty"`
}

// Run statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Report summarizes a generation run. On failure it holds the artifacts
// completed before the failing group.
type Report struct {
	RunID      uuid.UUID          `json:"run_id"`
	Status     string             `json:"status"`
	Error      string             `json:"error,omitempty"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
	Artifacts  []Artifact         `json:"artifacts"`
	Skipped    []grouping.Skipped `json:"skipped,omitempty"`
}

// Generator runs the grouping, assembly and rendering steps over a snapshot.
type Generator struct {
	assembler *Assembler
	renderer  Renderer
	logger    *zap.Logger
}

// NewGenerator creates a Generator. A nil dict uses the embedded dictionary
// and a nil logger discards output.
func NewGenerator(dict *grammar.Dictionary, renderer Renderer, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		assembler: NewAssembler(dict),
		renderer:  renderer,
		logger:    logger,
	}
}

// Preview assembles every group's document without rendering.
func (g *Generator) Preview(snap types.Snapshot) ([]types.GroupDocument, []grouping.Skipped) {
	groups, skipped := grouping.Partition(snap.Invited)
	docs := make([]types.GroupDocument, 0, len(groups))
	for _, group := range groups {
		docs = append(docs, g.assemble(snap.Roster, group))
	}
	return docs, skipped
}

// Generate renders one artifact per group, one group at a time. The first
// renderer failure or a cancelled ctx stops the run with a *GenerationError;
// artifacts already written stay valid and are listed in the report.
func (g *Generator) Generate(ctx context.Context, snap types.Snapshot) (*Report, error) {
	report := &Report{
		RunID:     uuid.New(),
		StartedAt: time.Now(),
	}
	log := g.logger.With(zap.String("run_id", report.RunID.String()))

	groups, skipped := grouping.Partition(snap.Invited)
	report.Skipped = skipped
	for _, s := range skipped {
		log.Warn("Excluding malformed invitee",
			zap.Int64("employee_id", s.Employee.ID),
			zap.String("name", s.Employee.FullName),
			zap.String("reason", s.Reason))
	}
	log.Info("Starting generation", zap.Int("groups", len(groups)), zap.Int("invited", len(snap.Invited)))

	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return report.fail(&GenerationError{Key: group.Key, Message: "run cancelled", Cause: err})
		}

		doc := g.assemble(snap.Roster, group)
		path, err := g.renderer.Render(ctx, doc)
		if err != nil {
			log.Error("Rendering failed", zap.Stringer("group", group.Key), zap.Error(err))
			return report.fail(&GenerationError{Key: group.Key, Message: "failed to render document", Cause: err})
		}

		artifact := Artifact{Key: group.Key, Path: path, Members: len(doc.Employees)}
		if doc.Responsible != nil {
			artifact.Responsible = doc.Responsible.ID
		}
		report.Artifacts = append(report.Artifacts, artifact)

		log.Info("Rendered group",
			zap.Stringer("group", group.Key),
			zap.Int("members", artifact.Members),
			zap.Int64("responsible_id", artifact.Responsible),
			zap.String("path", path))
	}

	report.Status = StatusCompleted
	report.FinishedAt = time.Now()
	log.Info("Generation completed", zap.Int("artifacts", len(report.Artifacts)))
	return report, nil
}

func (r *Report) fail(err *GenerationError) (*Report, error) {
	r.Status = StatusFailed
	r.Error = err.Error()
	r.FinishedAt = time.Now()
	return r, err
}

func (g *Generator) assemble(roster []types.Employee, group types.Group) types.GroupDocument {
	var responsible *types.Employee
	if e, ok := grouping.FindResponsible(roster, group.Key); ok {
		responsible = &e
	}
	return g.assembler.Assemble(group, responsible)
}
