package engine_test

import (
	"context"
	"fmt"
	"testing"

	"adapter-quiz-service/internal/catalog"
	"adapter-quiz-service/internal/domain"
	"adapter-quiz-service/internal/engine"
	"adapter-quiz-service/internal/infra/memory"
)

// newTestEngine builds an engine over the default question catalog and the
// shared product fixtures.
func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return newTestEngineWithProducts(t, testProducts())
}

func newTestEngineWithProducts(t *testing.T, products []domain.Product) *engine.Engine {
	t.Helper()
	return engine.New(
		memory.NewProductSource(products),
		catalog.NewRegistry(catalog.Default()),
		engine.DefaultConfig(),
	)
}

func questionByID(t *testing.T, id string) domain.Question {
	t.Helper()
	question, ok := catalog.Default().Question(id)
	if !ok {
		t.Fatalf("question %s missing from default catalog", id)
	}
	return question
}

func answered(t *testing.T, eng *engine.Engine, pairs ...[2]string) domain.Profile {
	t.Helper()
	var profile domain.Profile
	var err error
	for _, pair := range pairs {
		profile, err = eng.RecordAnswer(profile, pair[0], pair[1])
		if err != nil {
			t.Fatalf("record %s=%s: %v", pair[0], pair[1], err)
		}
	}
	return profile
}

// failingSource simulates a catalog outage.
type failingSource struct{}

func (failingSource) Query(context.Context, []domain.FilterPredicate, int) ([]domain.Product, error) {
	return nil, fmt.Errorf("%w: connection refused", domain.ErrCatalogUnavailable)
}

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "30W USB-C Charger", Attributes: map[string]any{
			"manufacturer": "anker", "port_type_name": "usb_c", "price": 19.99,
			"max_wattage": 30, "is_certified": true, "port_count": 1, "cable_length_m": 0.0, "warranty_years": 2,
		}},
		{ID: "p2", Name: "65W GaN Charger", Attributes: map[string]any{
			"manufacturer": "anker", "port_type_name": "usb_c", "price": 49.99,
			"max_wattage": 65, "is_certified": true, "port_count": 2, "cable_length_m": 0.0, "warranty_years": 2,
		}},
		{ID: "p3", Name: "96W Power Adapter", Attributes: map[string]any{
			"manufacturer": "apple", "port_type_name": "usb_c", "price": 79.0,
			"max_wattage": 96, "is_certified": true, "port_count": 1, "cable_length_m": 0.0, "warranty_years": 1,
		}},
		{ID: "p4", Name: "Magnetic Charger", Attributes: map[string]any{
			"manufacturer": "apple", "port_type_name": "magsafe", "price": 39.0,
			"max_wattage": 15, "is_certified": true, "port_count": 1, "cable_length_m": 1.0, "warranty_years": 1,
		}},
		{ID: "p5", Name: "USB-A Car Charger", Attributes: map[string]any{
			"manufacturer": "belkin", "port_type_name": "usb_a", "price": 14.99,
			"max_wattage": 24, "is_certified": false, "port_count": 2, "cable_length_m": 0.0, "warranty_years": 1,
		}},
		{ID: "p6", Name: "45W Travel Adapter", Attributes: map[string]any{
			"manufacturer": "samsung", "port_type_name": "usb_c", "price": 34.99,
			"max_wattage": 45, "is_certified": true, "port_count": 1, "cable_length_m": 1.0, "warranty_years": 1,
		}},
		{ID: "p7", Name: "3m HDMI Cable", Attributes: map[string]any{
			"manufacturer": "belkin", "port_type_name": "hdmi", "price": 24.99,
			"max_wattage": 0, "is_certified": true, "port_count": 1, "cable_length_m": 3.0, "warranty_years": 2,
		}},
		{ID: "p8", Name: "Lightning Cable 1.8m", Attributes: map[string]any{
			"manufacturer": "anker", "port_type_name": "lightning", "price": 17.99,
			"max_wattage": 12, "is_certified": true, "port_count": 1, "cable_length_m": 1.8, "warranty_years": 2,
		}},
	}
}
