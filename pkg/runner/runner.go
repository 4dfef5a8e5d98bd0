// Package runner simulates running beginner Python snippets for the course
// UI. It is a deliberate placeholder, not an interpreter: there is no
// grammar, no evaluator and no sandbox. The behaviour is a set of
// line-oriented pattern checks that reproduce the errors and output a
// beginner is most likely to see, nothing more.
package runner

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Result is the simulated outcome of a run.
type Result struct {
	OK     bool   `json:"ok"`
	Output string `json:"output"`
	Error  string `json:"error,omitempty"`
}

var (
	printRe      = regexp.MustCompile(`print\s*\(\s*([^)]+?)\s*\)`)
	assignRe     = regexp.MustCompile(`^\s*(\w+)\s*=\s*(.+)$`)
	rangeTwoRe   = regexp.MustCompile(`range\s*\(\s*(\d+)\s*,\s*(\d+)\s*\)`)
	rangeOneRe   = regexp.MustCompile(`range\s*\(\s*(\d+)\s*\)`)
	comparisonRe = regexp.MustCompile(`^(-?\d+)\s*(>|<|>=|<=|==)\s*(-?\d+)$`)
	leadSpaceRe  = regexp.MustCompile(`^(\s*)`)
)

// Run simulates executing the source and returns its pretend output or a
// pretend Python error.
func Run(source string) Result {
	if strings.TrimSpace(source) == "" {
		return failure("SyntaxError: unexpected EOF while parsing")
	}

	lines := strings.Split(source, "\n")
	if msg := checkSyntax(lines); msg != "" {
		return failure(msg)
	}

	var output strings.Builder

	variables := collectVariables(lines)
	for _, match := range printRe.FindAllStringSubmatch(source, -1) {
		output.WriteString(renderPrint(match[1], variables))
		output.WriteByte('\n')
	}

	if strings.Contains(source, "for") && strings.Contains(source, "range") {
		writeRangeOutput(source, &output)
	}

	return Result{OK: true, Output: strings.TrimSuffix(output.String(), "\n")}
}

func failure(message string) Result {
	return Result{OK: false, Error: message}
}

// checkSyntax walks the lines looking for the handful of beginner mistakes
// the simulation knows how to report.
func checkSyntax(lines []string) string {
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lineNo := i + 1

		if hasBlockKeyword(line) && !strings.Contains(line, ":") {
			return fmt.Sprintf("SyntaxError: expected ':'\n  File \"<stdin>\", line %d\n    %s", lineNo, trimmed)
		}
		if strings.Contains(line, "rang(") && !strings.Contains(line, "range(") {
			return fmt.Sprintf("NameError: name 'rang' is not defined\n  File \"<stdin>\", line %d, in <module>\n    %s", lineNo, trimmed)
		}
		if strings.Contains(line, "prnt(") && !strings.Contains(line, "print(") {
			return fmt.Sprintf("NameError: name 'prnt' is not defined\n  File \"<stdin>\", line %d, in <module>\n    %s", lineNo, trimmed)
		}
		if indent := len(leadSpaceRe.FindStringSubmatch(line)[1]); indent > 0 && indent%4 != 0 {
			return fmt.Sprintf("IndentationError: unindent does not match any outer indentation level\n  File \"<stdin>\", line %d\n    %s", lineNo, trimmed)
		}
		if strings.Count(line, "(") > strings.Count(line, ")") {
			return fmt.Sprintf("SyntaxError: unexpected EOF while parsing\n  File \"<stdin>\", line %d\n    %s", lineNo, trimmed)
		}
		if strings.Count(line, "'")%2 != 0 || strings.Count(line, "\"")%2 != 0 {
			return fmt.Sprintf("SyntaxError: EOL while scanning string literal\n  File \"<stdin>\", line %d\n    %s", lineNo, trimmed)
		}
		if strings.Contains(line, "===") || strings.Contains(line, "!==") {
			return fmt.Sprintf("SyntaxError: invalid syntax\n  File \"<stdin>\", line %d\n    %s", lineNo, trimmed)
		}
		if strings.Contains(line, "else if") {
			return fmt.Sprintf("SyntaxError: invalid syntax\n  File \"<stdin>\", line %d\n    %s", lineNo, trimmed)
		}
		if strings.Contains(line, "/ 0") || strings.Contains(line, "/0") {
			return fmt.Sprintf("ZeroDivisionError: division by zero\n  File \"<stdin>\", line %d, in <module>\n    %s", lineNo, trimmed)
		}

		if hasBlockKeyword(line) && strings.Contains(line, ":") && i+1 < len(lines) {
			next := lines[i+1]
			if strings.TrimSpace(next) != "" && !strings.HasPrefix(next, " ") && !strings.HasPrefix(next, "\t") {
				return fmt.Sprintf("IndentationError: expected an indented block\n  File \"<stdin>\", line %d\n    %s", lineNo+1, strings.TrimSpace(next))
			}
		}
	}
	return ""
}

func hasBlockKeyword(line string) bool {
	for _, keyword := range []string{"for ", "if ", "while "} {
		if strings.Contains(line, keyword) {
			return true
		}
	}
	return false
}

// collectVariables builds a flat name table from simple assignments: quoted
// strings and integer literals only.
func collectVariables(lines []string) map[string]string {
	variables := make(map[string]string)
	for _, line := range lines {
		match := assignRe.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		name := match[1]
		value := strings.TrimSpace(match[2])

		switch {
		case len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"',
			len(value) >= 2 && value[0] == '\'' && value[len(value)-1] == '\'':
			variables[name] = value[1 : len(value)-1]
		default:
			if _, err := strconv.Atoi(value); err == nil {
				variables[name] = value
			}
		}
	}
	return variables
}

func renderPrint(argument string, variables map[string]string) string {
	argument = strings.TrimSpace(argument)

	if value, ok := variables[argument]; ok {
		return value
	}

	// Literal comparisons like 10 > 5 render as Python booleans.
	if match := comparisonRe.FindStringSubmatch(argument); match != nil {
		left, _ := strconv.Atoi(match[1])
		right, _ := strconv.Atoi(match[3])
		if compare(left, right, match[2]) {
			return "True"
		}
		return "False"
	}

	if len(argument) >= 2 {
		if argument[0] == '"' && argument[len(argument)-1] == '"' || argument[0] == '\'' && argument[len(argument)-1] == '\'' {
			return argument[1 : len(argument)-1]
		}
	}
	return argument
}

func compare(left, right int, operator string) bool {
	switch operator {
	case ">":
		return left > right
	case "<":
		return left < right
	case ">=":
		return left >= right
	case "<=":
		return left <= right
	case "==":
		return left == right
	}
	return false
}

func writeRangeOutput(source string, output *strings.Builder) {
	if match := rangeTwoRe.FindStringSubmatch(source); match != nil {
		start, _ := strconv.Atoi(match[1])
		end, _ := strconv.Atoi(match[2])
		for i := start; i < end; i++ {
			fmt.Fprintf(output, "%d\n", i)
		}
		return
	}
	if match := rangeOneRe.FindStringSubmatch(source); match != nil {
		end, _ := strconv.Atoi(match[1])
		for i := 0; i < end; i++ {
			fmt.Fprintf(output, "%d\n", i)
		}
	}
}
