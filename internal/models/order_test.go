package models

import "testing"

func TestOrderEditable(t *testing.T) {
	cases := []struct {
		estado   OrderEstado
		editable bool
	}{
		{"", true},
		{EstadoPendiente, true},
		{EstadoVisto, false},
		{EstadoPreparando, false},
		{EstadoListo, false},
		{EstadoEntregado, false},
		{EstadoCancelado, false},
	}
	for _, tc := range cases {
		o := Order{Estado: tc.estado}
		if o.Editable() != tc.editable {
			t.Errorf("estado %q: expected editable=%v", tc.estado, tc.editable)
		}
	}
}

func TestOrderTotal(t *testing.T) {
	o := Order{Items: []OrderItem{
		{Cantidad: 3, PrecioCongelado: 4200},
		{Cantidad: 1, PrecioCongelado: 950},
	}}
	if got := o.Total(); got != 4200*3+950 {
		t.Errorf("expected total %v, got %v", float64(4200*3+950), got)
	}
}

func TestOrderEstadoValid(t *testing.T) {
	if !EstadoPreparando.Valid() {
		t.Error("preparando should be a valid estado")
	}
	if OrderEstado("enviado").Valid() {
		t.Error("unknown estado should not validate")
	}
}
