package calc

import (
	"errors"
	"fmt"
	"strings"
)

// BMI categories.
const (
	Underweight = "Underweight"
	Normal      = "Normal"
	Overweight  = "Overweight"
	Obese       = "Obese"
)

// BMI computes body-mass index from kilograms and a height that is read as
// centimetres when above 3, metres otherwise.
func BMI(weightKg, height float64) (float64, error) {
	if weightKg <= 0 || height <= 0 {
		return 0, errors.New("weight and height must be positive")
	}
	if height > 3 {
		height = height / 100
	}
	return weightKg / (height * height), nil
}

// BMICategory maps a BMI value to its category. Boundaries are 18.5, 25 and 30.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 25:
		return Normal
	case bmi < 30:
		return Overweight
	default:
		return Obese
	}
}

// usdRates is the fixed table of supported currencies, units per US dollar.
var usdRates = map[string]float64{
	"USD": 1,
	"INR": 83,
	"EUR": 0.92,
}

// UnsupportedPairError names a currency pair outside the fixed table.
type UnsupportedPairError struct {
	From, To string
}

func (e *UnsupportedPairError) Error() string {
	return fmt.Sprintf("unsupported currency pair %s to %s", e.From, e.To)
}

// ConvertCurrency converts amount between two supported currencies.
func ConvertCurrency(amount float64, from, to string) (float64, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	fr, ok1 := usdRates[from]
	tr, ok2 := usdRates[to]
	if !ok1 || !ok2 {
		return 0, &UnsupportedPairError{From: from, To: to}
	}
	return amount / fr * tr, nil
}

type unit struct {
	name      string
	dimension string
	toBase    func(float64) float64
	fromBase  func(float64) float64
}

func linear(name, dim string, factor float64) unit {
	return unit{
		name:      name,
		dimension: dim,
		toBase:    func(v float64) float64 { return v * factor },
		fromBase:  func(v float64) float64 { return v / factor },
	}
}

var (
	km         = linear("km", "length", 1000)
	meter      = linear("m", "length", 1)
	cm         = linear("cm", "length", 0.01)
	mile       = linear("miles", "length", 1609.344)
	foot       = linear("feet", "length", 0.3048)
	inch       = linear("inches", "length", 0.0254)
	kg         = linear("kg", "mass", 1)
	gram       = linear("g", "mass", 0.001)
	pound      = linear("pounds", "mass", 0.45359237)
	liter      = linear("liters", "volume", 1)
	milliliter = linear("ml", "volume", 0.001)
	gallon     = linear("gallons", "volume", 3.785411784)
	celsius    = unit{"°C", "temperature", func(v float64) float64 { return v }, func(v float64) float64 { return v }}
	fahrenheit = unit{"°F", "temperature",
		func(v float64) float64 { return (v - 32) * 5 / 9 },
		func(v float64) float64 { return v*9/5 + 32 }}
)

var unitAliases = map[string]unit{
	"km": km, "kms": km, "kilometer": km, "kilometers": km, "kilometre": km, "kilometres": km,
	"m": meter, "meter": meter, "meters": meter, "metre": meter, "metres": meter,
	"cm": cm, "centimeter": cm, "centimeters": cm,
	"mile": mile, "miles": mile, "mi": mile,
	"ft": foot, "foot": foot, "feet": foot,
	"in": inch, "inch": inch, "inches": inch,
	"kg": kg, "kgs": kg, "kilogram": kg, "kilograms": kg,
	"g": gram, "gram": gram, "grams": gram,
	"lb": pound, "lbs": pound, "pound": pound, "pounds": pound,
	"l": liter, "liter": liter, "liters": liter, "litre": liter, "litres": liter,
	"ml": milliliter, "milliliter": milliliter, "milliliters": milliliter,
	"gallon": gallon, "gallons": gallon, "gal": gallon,
	"c": celsius, "°c": celsius, "celsius": celsius,
	"f": fahrenheit, "°f": fahrenheit, "fahrenheit": fahrenheit,
}

// IsUnit reports whether word names a supported unit.
func IsUnit(word string) bool {
	_, ok := unitAliases[strings.ToLower(word)]
	return ok
}

// ConvertUnit converts value between two units of the same dimension and
// returns the result with the target unit's display name.
func ConvertUnit(value float64, from, to string) (float64, string, error) {
	f, ok1 := unitAliases[strings.ToLower(from)]
	t, ok2 := unitAliases[strings.ToLower(to)]
	if !ok1 || !ok2 {
		return 0, "", fmt.Errorf("unknown unit in %s to %s", from, to)
	}
	if f.dimension != t.dimension {
		return 0, "", fmt.Errorf("can't convert %s to %s", f.dimension, t.dimension)
	}
	return t.fromBase(f.toBase(value)), t.name, nil
}
