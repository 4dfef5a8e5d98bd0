package runner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunEmptySource(t *testing.T) {
	result := Run("   \n  ")
	require.False(t, result.OK)
	require.Contains(t, result.Error, "SyntaxError: unexpected EOF")
}

func TestRunPrintsStringLiteral(t *testing.T) {
	result := Run(`print("Hello, world!")`)
	require.True(t, result.OK)
	require.Equal(t, "Hello, world!", result.Output)
}

func TestRunResolvesSimpleVariables(t *testing.T) {
	result := Run("name = \"Alina\"\nprint(name)")
	require.True(t, result.OK)
	require.Equal(t, "Alina", result.Output)

	result = Run("x = 42\nprint(x)")
	require.True(t, result.OK)
	require.Equal(t, "42", result.Output)
}

func TestRunRendersComparisons(t *testing.T) {
	result := Run("print(10 > 5)")
	require.True(t, result.OK)
	require.Equal(t, "True", result.Output)

	result = Run("print(3 >= 7)")
	require.True(t, result.OK)
	require.Equal(t, "False", result.Output)
}

func TestRunSimulatesRangeLoop(t *testing.T) {
	result := Run("for i in range(3):\n    print(i)")
	require.True(t, result.OK)
	// The print regex first echoes the loop variable, then the loop output
	// follows. This quirk matches the original simulation.
	require.Contains(t, result.Output, "0\n1\n2")
}

func TestRunReportsMissingColon(t *testing.T) {
	result := Run("for i in range(3)\n    print(i)")
	require.False(t, result.OK)
	require.Contains(t, result.Error, "SyntaxError: expected ':'")
	require.Contains(t, result.Error, "line 1")
}

func TestRunReportsTypoNameErrors(t *testing.T) {
	result := Run("for i in rang(3):\n    print(i)")
	require.False(t, result.OK)
	require.Contains(t, result.Error, "NameError: name 'rang' is not defined")

	result = Run(`prnt("hi")`)
	require.False(t, result.OK)
	require.Contains(t, result.Error, "NameError: name 'prnt' is not defined")
}

func TestRunReportsBadIndentation(t *testing.T) {
	result := Run("if 1 > 0:\n   print(1)")
	require.False(t, result.OK)
	require.Contains(t, result.Error, "IndentationError")
}

func TestRunReportsMissingIndentedBlock(t *testing.T) {
	result := Run("if 1 > 0:\nprint(1)")
	require.False(t, result.OK)
	require.Contains(t, result.Error, "IndentationError: expected an indented block")
}

func TestRunReportsUnbalancedDelimiters(t *testing.T) {
	result := Run(`print("open`)
	require.False(t, result.OK)
	require.Contains(t, result.Error, "SyntaxError")

	result = Run("print((1)")
	require.False(t, result.OK)
	require.Contains(t, result.Error, "SyntaxError: unexpected EOF")
}

func TestRunReportsZeroDivision(t *testing.T) {
	result := Run("print(1 / 0)")
	require.False(t, result.OK)
	require.Contains(t, result.Error, "ZeroDivisionError: division by zero")
}

func TestRunReportsForeignSyntax(t *testing.T) {
	result := Run("if x === 1:\n    print(x)")
	require.False(t, result.OK)
	require.Contains(t, result.Error, "SyntaxError: invalid syntax")
}
