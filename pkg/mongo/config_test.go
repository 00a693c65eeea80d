package mongo_test

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/pmaterna/apibase/pkg/mongo"
	"github.com/pmaterna/apibase/pkg/pagination"
)

func TestConfig_Finalize_Defaults(t *testing.T) {
	cfg := &mongo.Config{Database: "app"}

	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.URI != "mongodb://localhost:27017" {
		t.Errorf("URI = %q, want default", cfg.URI)
	}
	if got := cfg.ConnTimeoutDuration(); got != 10*time.Second {
		t.Errorf("ConnTimeoutDuration() = %v, want 10s", got)
	}
	if got := cfg.PingTimeoutDuration(); got != 5*time.Second {
		t.Errorf("PingTimeoutDuration() = %v, want 5s", got)
	}
}

func TestConfig_Finalize_DatabaseRequired(t *testing.T) {
	cfg := &mongo.Config{}

	if err := cfg.Finalize(nil); err == nil {
		t.Error("Finalize() succeeded without database, want error")
	}
}

func TestConfig_Finalize_InvalidTimeout(t *testing.T) {
	cfg := &mongo.Config{Database: "app", ConnTimeout: "soon"}

	if err := cfg.Finalize(nil); err == nil {
		t.Error("Finalize() succeeded with malformed timeout, want error")
	}
}

func TestConfig_Merge(t *testing.T) {
	base := mongo.Config{URI: "mongodb://base:27017", Database: "app"}
	overlay := mongo.Config{Database: "app_staging"}

	base.Merge(&overlay)

	if base.URI != "mongodb://base:27017" {
		t.Errorf("URI = %q, want base value preserved", base.URI)
	}
	if base.Database != "app_staging" {
		t.Errorf("Database = %q, want %q", base.Database, "app_staging")
	}
}

func TestSortDocument(t *testing.T) {
	tests := []struct {
		name string
		req  pagination.PageRequest
		want bson.D
	}{
		{"no sort field", pagination.PageRequest{Order: pagination.OrderAsc}, nil},
		{"ascending", pagination.PageRequest{Sort: "created_at", Order: pagination.OrderAsc}, bson.D{{Key: "created_at", Value: 1}}},
		{"descending", pagination.PageRequest{Sort: "title", Order: pagination.OrderDesc}, bson.D{{Key: "title", Value: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mongo.SortDocument(tt.req)

			if tt.want == nil {
				if got != nil {
					t.Errorf("SortDocument() = %v, want nil", got)
				}
				return
			}

			if len(got) != 1 || got[0].Key != tt.want[0].Key || got[0].Value != tt.want[0].Value {
				t.Errorf("SortDocument() = %v, want %v", got, tt.want)
			}
		})
	}
}
