package inspector

import (
	"testing"

	"github.com/pthm-cable/foragers/components"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag     string
		widget  Widget
		options map[string]string
	}{
		{"", WidgetAuto, map[string]string{}},
		{"bar", WidgetBar, map[string]string{}},
		{"bar,max:0.005,fmt:%.4f", WidgetBar, map[string]string{"max": "0.005", "fmt": "%.4f"}},
		{"angle", WidgetAngle, map[string]string{}},
		{"label, fmt:%.1f", WidgetLabel, map[string]string{"fmt": "%.1f"}},
		{"skip", WidgetSkip, map[string]string{}},
		{"unknown", WidgetAuto, map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			widget, options := ParseTag(tt.tag)
			if widget != tt.widget {
				t.Errorf("widget = %v, want %v", widget, tt.widget)
			}
			if len(options) != len(tt.options) {
				t.Fatalf("options = %v, want %v", options, tt.options)
			}
			for k, v := range tt.options {
				if options[k] != v {
					t.Errorf("options[%q] = %q, want %q", k, options[k], v)
				}
			}
		})
	}
}

func TestExtractFields(t *testing.T) {
	mot := components.Motion{Rotation: 1.5, Speed: 0.003}
	fields := ExtractFields(&mot)
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(fields))
	}
	if fields[0].Name != "Rotation" || fields[0].Widget != WidgetAngle {
		t.Errorf("field 0 = %+v, want Rotation angle", fields[0])
	}
	if fields[1].Name != "Speed" || fields[1].Widget != WidgetBar || GetMax(fields[1].Options) != 0.005 {
		t.Errorf("field 1 = %+v, want Speed bar with max 0.005", fields[1])
	}

	if fields := ExtractFields(components.Mind{}); len(fields) != 0 {
		t.Errorf("Mind fields = %+v, want none (brain is skipped)", fields)
	}
	if fields := ExtractFields(42); fields != nil {
		t.Errorf("non-struct fields = %+v, want nil", fields)
	}
}

func TestExtractFieldsAutoDetect(t *testing.T) {
	type sample struct {
		Flag   bool
		Count  int
		Values [3]float64
		hidden int
	}

	fields := ExtractFields(sample{Flag: true, Count: 3, hidden: 1})
	want := []Widget{WidgetLabel, WidgetLabel, WidgetBar}
	if len(fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(fields), len(want))
	}
	for i, w := range want {
		if fields[i].Widget != w {
			t.Errorf("field %s widget = %v, want %v", fields[i].Name, fields[i].Widget, w)
		}
	}
}

func TestExtractSections(t *testing.T) {
	sections := ExtractSections([]any{
		components.Position{X: 0.25, Y: 0.5},
		components.Mind{},
		&components.Satiation{Count: 4},
	})

	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}
	if sections[0].Name != "Position" || len(sections[0].Fields) != 2 {
		t.Errorf("section 0 = %+v", sections[0])
	}
	if sections[1].Name != "Satiation" || sections[1].Fields[0].Value != uint32(4) {
		t.Errorf("section 1 = %+v", sections[1])
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value any
		fmt   string
		want  string
	}{
		{float32(0.12345), "", "0.12"},
		{float64(2), "", "2.00"},
		{uint32(7), "", "7"},
		{float32(0.12345), "%.4f", "0.1235"},
		{"text", "", "text"},
	}

	for _, tt := range tests {
		if got := FormatValue(tt.value, tt.fmt); got != tt.want {
			t.Errorf("FormatValue(%v, %q) = %q, want %q", tt.value, tt.fmt, got, tt.want)
		}
	}
}

func TestGetMax(t *testing.T) {
	tests := []struct {
		options map[string]string
		want    float32
	}{
		{nil, 1},
		{map[string]string{"max": "200"}, 200},
		{map[string]string{"max": "abc"}, 1},
		{map[string]string{"max": "0"}, 1},
	}

	for _, tt := range tests {
		if got := GetMax(tt.options); got != tt.want {
			t.Errorf("GetMax(%v) = %v, want %v", tt.options, got, tt.want)
		}
	}
}

func TestGetFloatSlice(t *testing.T) {
	if got, ok := GetFloatSlice([]float32{0.5, 1}); !ok || len(got) != 2 || got[1] != 1 {
		t.Errorf("GetFloatSlice([]float32) = %v, %v", got, ok)
	}
	if got, ok := GetFloatSlice([2]float64{0.25, 0.75}); !ok || got[0] != 0.25 {
		t.Errorf("GetFloatSlice([2]float64) = %v, %v", got, ok)
	}
	if _, ok := GetFloatSlice([]string{"a"}); ok {
		t.Error("GetFloatSlice accepted strings")
	}
	if _, ok := GetFloatSlice(1.0); ok {
		t.Error("GetFloatSlice accepted a scalar")
	}
}

func TestFieldHeight(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		want  int32
	}{
		{"label", Field{Widget: WidgetLabel, Value: 1}, 20},
		{"scalar bar", Field{Widget: WidgetBar, Value: float32(0.5)}, 18},
		{"bar group", Field{Widget: WidgetBar, Value: []float32{0, 1}}, 34},
		{"angle", Field{Widget: WidgetAngle, Value: float32(1)}, 44},
		{"bool", Field{Widget: WidgetLabel, Value: true}, 20},
		{"angle fallback", Field{Widget: WidgetAngle, Value: "x"}, 20},
		{"bar fallback", Field{Widget: WidgetBar, Value: []string{"x"}}, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fieldHeight(tt.field); got != tt.want {
				t.Errorf("fieldHeight = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveCarriesValues(t *testing.T) {
	l := resolve(Field{Widget: WidgetBar, Value: [2]float64{0.25, 0.5}})
	if l.widget != WidgetBar || len(l.values) != 2 || l.values[1] != 0.5 {
		t.Errorf("cells layout = %+v", l)
	}

	l = resolve(Field{Widget: WidgetAngle, Value: float32(1.5)})
	if l.widget != WidgetAngle || l.scalar != 1.5 {
		t.Errorf("angle layout = %+v", l)
	}
}

func TestFillRatio(t *testing.T) {
	tests := []struct {
		value, max, want float32
	}{
		{0.0025, 0.005, 0.5},
		{-1, 1, 0},
		{3, 1, 1},
	}
	for _, tt := range tests {
		if got := fillRatio(tt.value, tt.max); got != tt.want {
			t.Errorf("fillRatio(%v, %v) = %v, want %v", tt.value, tt.max, got, tt.want)
		}
	}
}
