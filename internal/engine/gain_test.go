package engine_test

import (
	"testing"

	"adapter-quiz-service/internal/catalog"
	"adapter-quiz-service/internal/domain"
	"adapter-quiz-service/internal/engine"
)

func TestInformationGainEvenSplitIsMaximal(t *testing.T) {
	question := questionByID(t, "port_type")
	products := []domain.Product{
		{ID: "a", Attributes: map[string]any{"port_type_name": "usb_c"}},
		{ID: "b", Attributes: map[string]any{"port_type_name": "usb_c"}},
		{ID: "c", Attributes: map[string]any{"port_type_name": "usb_a"}},
		{ID: "d", Attributes: map[string]any{"port_type_name": "usb_a"}},
		{ID: "e", Attributes: map[string]any{"port_type_name": "lightning"}},
		{ID: "f", Attributes: map[string]any{"port_type_name": "lightning"}},
		{ID: "g", Attributes: map[string]any{"port_type_name": "magsafe"}},
		{ID: "h", Attributes: map[string]any{"port_type_name": "magsafe"}},
		{ID: "i", Attributes: map[string]any{"port_type_name": "hdmi"}},
		{ID: "j", Attributes: map[string]any{"port_type_name": "hdmi"}},
	}

	gain := engine.InformationGain(question, products)
	if gain < 0.99 || gain > 1 {
		t.Fatalf("expected near-maximal gain for an even split, got %f", gain)
	}
}

func TestInformationGainSkewedSplitIsLower(t *testing.T) {
	question := questionByID(t, "port_type")
	even := []domain.Product{
		{ID: "a", Attributes: map[string]any{"port_type_name": "usb_c"}},
		{ID: "b", Attributes: map[string]any{"port_type_name": "usb_a"}},
	}
	skewed := []domain.Product{
		{ID: "a", Attributes: map[string]any{"port_type_name": "usb_c"}},
		{ID: "b", Attributes: map[string]any{"port_type_name": "usb_c"}},
		{ID: "c", Attributes: map[string]any{"port_type_name": "usb_c"}},
		{ID: "d", Attributes: map[string]any{"port_type_name": "usb_a"}},
	}

	if engine.InformationGain(question, skewed) >= engine.InformationGain(question, even) {
		t.Fatalf("expected skewed split to score below even split")
	}
}

func TestInformationGainEdgeCases(t *testing.T) {
	portType := questionByID(t, "port_type")

	if gain := engine.InformationGain(portType, nil); gain != 0 {
		t.Fatalf("expected 0 gain for empty candidates, got %f", gain)
	}
	single := []domain.Product{{ID: "a", Attributes: map[string]any{"port_type_name": "usb_c"}}}
	if gain := engine.InformationGain(portType, single); gain != 0 {
		t.Fatalf("expected 0 gain for single candidate, got %f", gain)
	}

	// device_category options carry follow-ups, not filters.
	deviceCategory := questionByID(t, "device_category")
	many := []domain.Product{
		{ID: "a", Attributes: map[string]any{"port_type_name": "usb_c"}},
		{ID: "b", Attributes: map[string]any{"port_type_name": "usb_a"}},
	}
	if gain := engine.InformationGain(deviceCategory, many); gain != 0 {
		t.Fatalf("expected 0 gain for a question without filters, got %f", gain)
	}
}

func TestInformationGainStaysInUnitInterval(t *testing.T) {
	products := testProducts()
	for _, question := range catalog.Default().Questions {
		gain := engine.InformationGain(question, products)
		if gain < 0 || gain > 1 {
			t.Fatalf("gain for %s out of [0,1]: %f", question.ID, gain)
		}
	}
}
