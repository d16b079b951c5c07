package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/workflowr/internal/model"
)

func newTestFormatter(format Format) (*Formatter, *bytes.Buffer) {
	var buf bytes.Buffer
	f := NewFormatter()
	f.Writer = &buf
	f.Format = format
	return f, &buf
}

// =============================================================================
// Formatter Tests
// =============================================================================

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"cli", "JSON", "plain"} {
		_, err := ParseFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestParseColorMode(t *testing.T) {
	m, err := ParseColorMode("Always")
	require.NoError(t, err)
	assert.Equal(t, ColorAlways, m)
	_, err = ParseColorMode("rainbow")
	assert.Error(t, err)
}

func TestIsColorEnabled(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		mode   ColorMode
		want   bool
	}{
		{"always", FormatCLI, ColorAlways, true},
		{"never", FormatCLI, ColorNever, false},
		{"auto_buffer", FormatCLI, ColorAuto, false},
		{"plain_forces_off", FormatPlain, ColorAlways, false},
		{"json_forces_off", FormatJSON, ColorAlways, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := newTestFormatter(tt.format)
			f.ColorMode = tt.mode
			assert.Equal(t, tt.want, f.IsColorEnabled())
		})
	}
}

func TestWidthFallsBack(t *testing.T) {
	f, _ := newTestFormatter(FormatCLI)
	assert.Equal(t, DefaultWidth, f.Width())
}

func TestJSON(t *testing.T) {
	f, buf := newTestFormatter(FormatJSON)
	require.NoError(t, f.JSON(map[string]int{"count": 2}))

	var out map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 2, out["count"])
}

// =============================================================================
// Value Formatting Tests
// =============================================================================

func TestFormatHours(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0min"},
		{45, "45min"},
		{60, "1h"},
		{90, "1h 30min"},
		{125, "2h 5min"},
		{-30, "-30min"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatHours(tt.minutes))
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		symbol string
		want   string
	}{
		{"zero", 0, "$", "$0.00"},
		{"cents", 75, "$", "$75.00"},
		{"rounding", 83.333333, "$", "$83.33"},
		{"thousands", 1234.5, "$", "$1,234.50"},
		{"millions", 1234567.891, "€", "€1,234,567.89"},
		{"negative", -12.5, "$", "-$12.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.amount, tt.symbol))
		})
	}

	f, _ := newTestFormatter(FormatCLI)
	f.Currency = "R$"
	assert.Equal(t, "R$10.00", f.Money(10))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "67%", FormatPercent(66.666))
	assert.Equal(t, "100%", FormatPercent(100))
}

func TestFormatDateAndTime(t *testing.T) {
	ts := time.Date(2026, 3, 9, 14, 5, 0, 0, time.Local)
	assert.Equal(t, "2026-03-09", FormatDate(ts))
	assert.Equal(t, "2026-03-09 14:05", FormatTime(ts))
}

// =============================================================================
// CLI Formatter Tests
// =============================================================================

func TestCLIMessages(t *testing.T) {
	f, buf := newTestFormatter(FormatCLI)
	f.ColorMode = ColorNever
	c := NewCLIFormatter(f)

	c.Success("Project created")
	c.Warning("No tasks")
	c.Error("Failed")
	c.Field("Rate", "$100.00")

	out := buf.String()
	assert.Contains(t, out, "✓ Project created")
	assert.Contains(t, out, "⚠ No tasks")
	assert.Contains(t, out, "✗ Failed")
	assert.Contains(t, out, "  Rate: $100.00")
}

func TestCLIStatus(t *testing.T) {
	f, _ := newTestFormatter(FormatCLI)
	f.ColorMode = ColorNever
	c := NewCLIFormatter(f)

	assert.Equal(t, "In Progress", c.Status(model.StatusInProgress))
	assert.Equal(t, "weird", c.Status("weird"))
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░", ProgressBar(50, 10))
	assert.Equal(t, "██████████", ProgressBar(150, 10))
	assert.Equal(t, "░░░░░░░░░░", ProgressBar(-5, 10))
}

func TestPrintTable(t *testing.T) {
	f, buf := newTestFormatter(FormatCLI)
	f.ColorMode = ColorNever
	c := NewCLIFormatter(f)

	c.PrintTable([]string{"NAME", "TIME"}, []TableRow{
		{Columns: []string{"Design", "45min"}},
		{Columns: []string{"Café menu", "1h"}},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "NAME       TIME", lines[0])
	assert.Equal(t, "Design     45min", lines[2])
	assert.Equal(t, "Café menu  1h", lines[3])

	buf.Reset()
	c.PrintTable([]string{"NAME"}, nil)
	assert.Empty(t, buf.String())
}

// =============================================================================
// JSON Output Tests
// =============================================================================

func TestJSONOutputs(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	p := model.NewProject("p1", "Site", "", "Acme", 100, now)
	po := NewProjectOutput(p, 45, 1, 75)
	assert.Equal(t, 45, po.TotalMinutes)
	assert.Equal(t, 75.0, po.TotalValue)

	task := model.NewTask("t1", "p1", "Design", "", 120, now)
	eff := 80.0
	to := NewTaskOutput(task, &eff, true)
	assert.Equal(t, "pending", to.Status)
	assert.True(t, to.Running)
	assert.Equal(t, "2026-05-01T12:00:00Z", to.UpdatedAt)

	log := model.NewActiveLog("l1", "t1", now).Complete(now.Add(45 * time.Minute))
	lo := NewTimeLogOutput(log)
	assert.Equal(t, 45, lo.Duration)
	assert.Equal(t, "2026-05-01T12:45:00Z", lo.EndTime)

	active := NewTimeLogOutput(model.NewActiveLog("l2", "t1", now))
	assert.Empty(t, active.EndTime)
}
