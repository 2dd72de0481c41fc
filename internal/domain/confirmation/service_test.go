package confirmation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/bitesoft/docgen/internal/domain/audit"
	"github.com/bitesoft/docgen/internal/platform/phi"
)

type mockRepo struct {
	byGeneration map[uuid.UUID]*Confirmation
}

func newMockRepo() *mockRepo {
	return &mockRepo{byGeneration: make(map[uuid.UUID]*Confirmation)}
}

func (m *mockRepo) Create(ctx context.Context, conf *Confirmation) error {
	if _, ok := m.byGeneration[conf.GenerationID]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyConfirmed, conf.GenerationID)
	}
	m.byGeneration[conf.GenerationID] = conf
	return nil
}

func (m *mockRepo) GetByGenerationID(ctx context.Context, generationID uuid.UUID) (*Confirmation, error) {
	return m.byGeneration[generationID], nil
}

type mockGenerations struct {
	records map[uuid.UUID]*audit.Record
}

func (m *mockGenerations) Get(ctx context.Context, id uuid.UUID) (*audit.Record, error) {
	return m.records[id], nil
}

func setup(t *testing.T) (*Service, *mockRepo, *mockGenerations) {
	t.Helper()
	repo := newMockRepo()
	gens := &mockGenerations{records: make(map[uuid.UUID]*audit.Record)}
	redactor := &phi.Redactor{StoreFullData: true, RedactFields: true, Fields: []string{"patient_name"}}
	return NewService(repo, gens, redactor), repo, gens
}

func successfulGeneration(gens *mockGenerations) uuid.UUID {
	id := uuid.New()
	gens.records[id] = &audit.Record{
		ID:              id,
		UserID:          "dev_user_001",
		DocumentType:    "treatment_summary",
		DocumentVersion: "v1",
		Status:          audit.StatusSuccess,
		Seed:            42,
	}
	return id
}

func TestConfirm_Success(t *testing.T) {
	svc, repo, gens := setup(t)
	genID := successfulGeneration(gens)

	conf, err := svc.Confirm(context.Background(), genID, "dev_user_001",
		map[string]interface{}{"title": "Treatment Plan"}, "looks good")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if conf.ID == uuid.Nil {
		t.Error("expected assigned confirmation id")
	}
	if conf.GenerationID != genID {
		t.Errorf("expected generation id %s, got %s", genID, conf.GenerationID)
	}
	if conf.DocumentType != "treatment_summary" || conf.DocumentVersion != "v1" {
		t.Error("expected document type and version carried from the audit record")
	}
	if conf.ConfirmedAt.IsZero() {
		t.Error("expected confirmed_at set")
	}
	if repo.byGeneration[genID] == nil {
		t.Error("expected confirmation persisted")
	}
}

func TestConfirm_Duplicate(t *testing.T) {
	svc, _, gens := setup(t)
	genID := successfulGeneration(gens)

	if _, err := svc.Confirm(context.Background(), genID, "dev_user_001", nil, ""); err != nil {
		t.Fatalf("first confirm failed: %v", err)
	}

	_, err := svc.Confirm(context.Background(), genID, "dev_user_001", nil, "")
	if !errors.Is(err, ErrAlreadyConfirmed) {
		t.Errorf("expected ErrAlreadyConfirmed, got %v", err)
	}
}

func TestConfirm_GenerationNotFound(t *testing.T) {
	svc, _, _ := setup(t)

	_, err := svc.Confirm(context.Background(), uuid.New(), "dev_user_001", nil, "")
	if !errors.Is(err, ErrGenerationNotFound) {
		t.Errorf("expected ErrGenerationNotFound, got %v", err)
	}
}

func TestConfirm_GenerationNotSuccessful(t *testing.T) {
	svc, _, gens := setup(t)

	id := uuid.New()
	gens.records[id] = &audit.Record{
		ID:           id,
		DocumentType: "treatment_summary",
		Status:       audit.StatusError,
		ErrorMessage: "llm call failed",
		Seed:         42,
	}

	_, err := svc.Confirm(context.Background(), id, "dev_user_001", nil, "")
	if !errors.Is(err, ErrGenerationNotSuccessful) {
		t.Errorf("expected ErrGenerationNotSuccessful, got %v", err)
	}
}

func TestConfirm_NilPayloadStoresEmptyObject(t *testing.T) {
	svc, repo, gens := setup(t)
	genID := successfulGeneration(gens)

	if _, err := svc.Confirm(context.Background(), genID, "dev_user_001", nil, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := repo.byGeneration[genID]
	if stored.ConfirmedPayload == nil || len(stored.ConfirmedPayload) != 0 {
		t.Errorf("expected empty-object payload, got %v", stored.ConfirmedPayload)
	}
}

func TestConfirm_PayloadRedacted(t *testing.T) {
	svc, repo, gens := setup(t)
	genID := successfulGeneration(gens)

	if _, err := svc.Confirm(context.Background(), genID, "dev_user_001",
		map[string]interface{}{"patient_name": "Jane Doe"}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := repo.byGeneration[genID]
	if stored.ConfirmedPayload["patient_name"] == "Jane Doe" {
		t.Error("expected patient_name redacted in stored payload")
	}
}

func TestIsConfirmed(t *testing.T) {
	svc, _, gens := setup(t)
	genID := successfulGeneration(gens)

	ok, err := svc.IsConfirmed(context.Background(), genID)
	if err != nil || ok {
		t.Errorf("expected not confirmed, got %v %v", ok, err)
	}

	if _, err := svc.Confirm(context.Background(), genID, "dev_user_001", nil, ""); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	ok, err = svc.IsConfirmed(context.Background(), genID)
	if err != nil || !ok {
		t.Errorf("expected confirmed, got %v %v", ok, err)
	}
}
