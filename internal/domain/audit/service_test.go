package audit

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/bitesoft/docgen/internal/platform/phi"
)

type mockRepo struct {
	records map[uuid.UUID]*Record
	order   []uuid.UUID
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[uuid.UUID]*Record)}
}

func (m *mockRepo) Append(ctx context.Context, rec *Record) error {
	m.records[rec.ID] = rec
	m.order = append(m.order, rec.ID)
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	return m.records[id], nil
}

func (m *mockRepo) List(ctx context.Context, f Filter, limit, offset int) ([]*Record, int, error) {
	var matched []*Record
	for i := len(m.order) - 1; i >= 0; i-- {
		rec := m.records[m.order[i]]
		if f.UserID != "" && rec.UserID != f.UserID {
			continue
		}
		if f.DocumentType != "" && rec.DocumentType != f.DocumentType {
			continue
		}
		if f.Status != "" && string(rec.Status) != f.Status {
			continue
		}
		matched = append(matched, rec)
	}

	total := len(matched)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func fullRedactor() *phi.Redactor {
	return &phi.Redactor{StoreFullData: true, RedactFields: true, Fields: []string{"patient_name"}}
}

func TestRecord_AssignsIDAndTimestamp(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, fullRedactor())

	rec, err := svc.Record(context.Background(), &Record{
		UserID:       "dev_user_001",
		DocumentType: "treatment_summary",
		Status:       StatusSuccess,
		Seed:         42,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.ID == uuid.Nil {
		t.Error("expected assigned id")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("expected assigned timestamp")
	}
	if repo.records[rec.ID] == nil {
		t.Error("expected record persisted")
	}
}

func TestRecord_RedactsInput(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, fullRedactor())

	rec, err := svc.Record(context.Background(), &Record{
		UserID:       "dev_user_001",
		DocumentType: "treatment_summary",
		InputData:    map[string]interface{}{"patient_name": "Jane Doe", "tier": "express"},
		Status:       StatusSuccess,
		Seed:         42,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name, _ := rec.InputData["patient_name"].(string)
	if !strings.HasPrefix(name, "[REDACTED:") {
		t.Errorf("expected patient_name redacted, got %v", rec.InputData["patient_name"])
	}
	if rec.InputData["tier"] != "express" {
		t.Errorf("expected tier untouched, got %v", rec.InputData["tier"])
	}
}

func TestRecord_MarkerWhenFullStorageDisabled(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &phi.Redactor{StoreFullData: false})

	rec, err := svc.Record(context.Background(), &Record{
		UserID:       "dev_user_001",
		DocumentType: "insurance_summary",
		InputData:    map[string]interface{}{"tier": "express_mild"},
		OutputData:   map[string]interface{}{"insurance_summary": "text"},
		Status:       StatusSuccess,
		Seed:         42,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.InputData["redacted"] != true || len(rec.InputData) != 1 {
		t.Errorf("expected input marker, got %v", rec.InputData)
	}
	if rec.OutputData["redacted"] != true || len(rec.OutputData) != 1 {
		t.Errorf("expected output marker, got %v", rec.OutputData)
	}
}

func TestRecord_ErrorStatus(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, fullRedactor())

	rec, err := svc.Record(context.Background(), &Record{
		UserID:       "dev_user_001",
		DocumentType: "treatment_summary",
		Status:       StatusError,
		ErrorMessage: "llm call failed: 502",
		Seed:         42,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Status != StatusError || rec.ErrorMessage == "" {
		t.Error("expected error record persisted with message")
	}
}

func TestList_Filters(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, fullRedactor())

	for _, rec := range []*Record{
		{UserID: "a", DocumentType: "treatment_summary", Status: StatusSuccess, Seed: 42},
		{UserID: "a", DocumentType: "insurance_summary", Status: StatusError, Seed: 42},
		{UserID: "b", DocumentType: "treatment_summary", Status: StatusSuccess, Seed: 42},
	} {
		if _, err := svc.Record(context.Background(), rec); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	recs, total, err := svc.List(context.Background(), Filter{UserID: "a"}, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(recs) != 2 {
		t.Errorf("expected 2 records for user a, got %d (total %d)", len(recs), total)
	}

	recs, total, err = svc.List(context.Background(), Filter{Status: "error"}, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || recs[0].DocumentType != "insurance_summary" {
		t.Errorf("unexpected error-status listing: total=%d", total)
	}
}
