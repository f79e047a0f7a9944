package verifier

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"matgen/generator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileName(t *testing.T) {
	label, rows, cols, err := ParseFileName("/some/dir/M_2_3")
	require.NoError(t, err)
	assert.Equal(t, "M", label)
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)

	label, rows, cols, err = ParseFileName("N_0_7")
	require.NoError(t, err)
	assert.Equal(t, "N", label)
	assert.Equal(t, 0, rows)
	assert.Equal(t, 7, cols)
}

func TestParseFileName_Errors(t *testing.T) {
	for _, name := range []string{"X_1_2", "M_1", "M_1_2_3", "M_a_2", "N_2_-1", "matrix.txt"} {
		_, _, _, err := ParseFileName(name)
		assert.True(t, errors.Is(err, ErrBadFileName), "%s: got %v", name, err)
	}
}

func TestCheck_GeneratorOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, generator.New(7).WriteMatrix(&buf, 4, 5))
	violations, err := Check(&buf, 4, 5)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestCheck_Empty(t *testing.T) {
	violations, err := Check(strings.NewReader(""), 0, 3)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func rules(violations []Violation) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Rule)
	}
	return out
}

func TestCheck_Violations(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		rows      int
		cols      int
		wantRules []string
		wantLine  int
	}{
		{"bad format", "1,1\t5\n1, 2\t6\n", 1, 2, []string{RuleFormat}, 2},
		{"missing tab", "1,1 5\n", 1, 1, []string{RuleFormat}, 1},
		{"value too big", "1,1\t100\n", 1, 1, []string{RuleRange}, 1},
		{"negative value", "1,1\t-1\n", 1, 1, []string{RuleRange}, 1},
		{"out of bounds", "1,1\t1\n1,3\t1\n", 1, 2, []string{RuleBounds, RuleOrder}, 2},
		{"column-major", "1,1\t1\n2,1\t1\n1,2\t1\n2,2\t1\n", 2, 2, []string{RuleOrder, RuleOrder}, 2},
		{"too few", "1,1\t1\n", 1, 2, []string{RuleCount}, 0},
		{"too many", "1,1\t1\n1,1\t1\n", 1, 1, []string{RuleCount}, 0},
		{"format error keeps position", "1,1\t1\nbad\n2,1\t1\n2,2\t1\n", 2, 2, []string{RuleFormat}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations, err := Check(strings.NewReader(tt.body), tt.rows, tt.cols)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRules, rules(violations))
			require.NotEmpty(t, violations)
			assert.Equal(t, tt.wantLine, violations[0].Line)
		})
	}
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	path, err := generator.New(1).GenerateFile(dir, generator.LabelN, 3, 2)
	require.NoError(t, err)
	violations, err := CheckFile(path)
	require.NoError(t, err)
	assert.Empty(t, violations)

	// same body under a name claiming another shape
	wrong := filepath.Join(dir, "N_2_3")
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(wrong, body, 0644))
	violations, err = CheckFile(wrong)
	require.NoError(t, err)
	assert.NotEmpty(t, violations)
}

func TestCheckFile_Missing(t *testing.T) {
	_, err := CheckFile(filepath.Join(t.TempDir(), "M_1_1"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestViolationString(t *testing.T) {
	assert.Equal(t, "line 3: range: too big", Violation{Line: 3, Rule: RuleRange, Message: "too big"}.String())
	assert.Equal(t, "count: short", Violation{Rule: RuleCount, Message: "short"}.String())
}
