package calc

import (
	"errors"
	"math"
	"testing"
)

func TestEval(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"2+2*3", 8},
		{"1+2+3+4+5", 15},
		{"10*2+5-3", 22},
		{"(2+2)*3", 12},
		{"8/4/2", 1},
		{"10-4-3", 3},
		{"-3+5", 2},
		{"2*-3", -6},
		{"25 × 17", 425},
		{"6x7", 42},
		{"9 ÷ 3", 3},
		{".5+.5", 1},
		{"7/2", 3.5},
		{" 3 * ( 4 - 1 ) ", 9},
		{"2+2*3?", 8},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Eval(tt.expr)
			if err != nil {
				t.Fatalf("Eval(%q): %v", tt.expr, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvalRejects(t *testing.T) {
	tests := []struct {
		expr string
		want error
	}{
		{"2+a", ErrInvalidChars},
		{"alert(1)", ErrInvalidChars},
		{"2^3", ErrInvalidChars},
		{"1/0", ErrNotFinite},
		{"0/0", ErrNotFinite},
		{"2+", ErrSyntax},
		{"(2+3", ErrSyntax},
		{"1..2+1", ErrSyntax},
		{"2 3", ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := Eval(tt.expr)
			if !errors.Is(err, tt.want) {
				t.Errorf("Eval(%q) error = %v, want %v", tt.expr, err, tt.want)
			}
		})
	}
}

func TestIsExpression(t *testing.T) {
	yes := []string{"2+2*3", "10 * 2", "(1+2)/3", "6x7", "-3+5", "2+2*3?"}
	no := []string{"42", "hello", "remove task 5", "2+a", "what is 2+2", ""}
	for _, s := range yes {
		if !IsExpression(s) {
			t.Errorf("IsExpression(%q) = false, want true", s)
		}
	}
	for _, s := range no {
		if IsExpression(s) {
			t.Errorf("IsExpression(%q) = true, want false", s)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(8); got != "8" {
		t.Errorf("expected '8', got %q", got)
	}
	if got := FormatNumber(0.1 + 0.2); got != "0.3" {
		t.Errorf("expected '0.3', got %q", got)
	}
	if got := FormatNumber(-0.0); got != "0" {
		t.Errorf("expected '0', got %q", got)
	}
}

func TestBMI(t *testing.T) {
	bmi, err := BMI(60, 160)
	if err != nil {
		t.Fatalf("bmi: %v", err)
	}
	if math.Abs(bmi-23.4375) > 1e-9 {
		t.Errorf("expected 23.4375, got %v", bmi)
	}

	// Metres and centimetres agree
	m, _ := BMI(60, 1.6)
	if math.Abs(m-bmi) > 1e-9 {
		t.Errorf("expected metres to match centimetres, got %v vs %v", m, bmi)
	}

	if _, err := BMI(0, 170); err == nil {
		t.Error("expected error for zero weight")
	}
}

func TestBMICategoryBoundaries(t *testing.T) {
	tests := []struct {
		bmi  float64
		want string
	}{
		{10, Underweight},
		{18.49, Underweight},
		{18.5, Normal},
		{24.99, Normal},
		{25, Overweight},
		{29.99, Overweight},
		{30, Obese},
		{45, Obese},
	}
	for _, tt := range tests {
		if got := BMICategory(tt.bmi); got != tt.want {
			t.Errorf("BMICategory(%v) = %s, want %s", tt.bmi, got, tt.want)
		}
	}
}

func TestConvertCurrency(t *testing.T) {
	got, err := ConvertCurrency(10, "usd", "inr")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got != 830 {
		t.Errorf("expected 830, got %v", got)
	}

	back, _ := ConvertCurrency(830, "INR", "USD")
	if math.Abs(back-10) > 1e-9 {
		t.Errorf("expected 10, got %v", back)
	}

	_, err = ConvertCurrency(10, "USD", "GBP")
	var upe *UnsupportedPairError
	if !errors.As(err, &upe) {
		t.Fatalf("expected UnsupportedPairError, got %v", err)
	}
	if upe.To != "GBP" {
		t.Errorf("expected GBP in error, got %q", upe.To)
	}
}

func TestConvertUnit(t *testing.T) {
	tests := []struct {
		value    float64
		from, to string
		want     float64
	}{
		{5, "km", "miles", 3.10686},
		{10, "kg", "pounds", 22.0462},
		{100, "celsius", "fahrenheit", 212},
		{32, "F", "C", 0},
		{1, "m", "cm", 100},
	}
	for _, tt := range tests {
		got, _, err := ConvertUnit(tt.value, tt.from, tt.to)
		if err != nil {
			t.Fatalf("ConvertUnit(%v %s->%s): %v", tt.value, tt.from, tt.to, err)
		}
		if math.Abs(got-tt.want) > 0.001 {
			t.Errorf("ConvertUnit(%v %s->%s) = %v, want %v", tt.value, tt.from, tt.to, got, tt.want)
		}
	}

	if _, _, err := ConvertUnit(1, "kg", "km"); err == nil {
		t.Error("expected dimension mismatch error")
	}
}
