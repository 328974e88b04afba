package numeric

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EvaluatePolish evaluates an expression written in reverse polish notation.
// Tokens are separated by single spaces. Supported tokens are numeric
// constants, variables written as $n (an index into variables), the binary
// functions +, -, *, / and the unary functions sin, cos, ln, exp, sqrt.
func EvaluatePolish(expression string, variables []float64) (float64, error) {
	tokens := strings.Split(strings.TrimSpace(expression), " ")
	stack := make([]float64, 0, len(tokens))

	pop := func() (float64, error) {
		if len(stack) == 0 {
			return 0, fmt.Errorf("incorrect expression: %s", expression)
		}
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v, nil
	}

	for _, token := range tokens {
		if token == "" {
			continue
		}

		if token[0] >= '0' && token[0] <= '9' {
			value, err := strconv.ParseFloat(token, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid constant: %s", token)
			}
			stack = append(stack, value)
			continue
		}

		if token[0] == '$' {
			index, err := strconv.Atoi(token[1:])
			if err != nil {
				return 0, fmt.Errorf("invalid variable: %s", token)
			}
			if index < 0 || index >= len(variables) {
				return 0, fmt.Errorf("variable index out of range: %s", token)
			}
			stack = append(stack, variables[index])
			continue
		}

		// every function takes at least one argument
		v, err := pop()
		if err != nil {
			return 0, err
		}

		switch token {
		case "+":
			left, err := pop()
			if err != nil {
				return 0, err
			}
			stack = append(stack, left+v)
		case "-":
			left, err := pop()
			if err != nil {
				return 0, err
			}
			stack = append(stack, left-v)
		case "*":
			left, err := pop()
			if err != nil {
				return 0, err
			}
			stack = append(stack, left*v)
		case "/":
			left, err := pop()
			if err != nil {
				return 0, err
			}
			stack = append(stack, left/v)
		case "sin":
			stack = append(stack, math.Sin(v))
		case "cos":
			stack = append(stack, math.Cos(v))
		case "ln":
			stack = append(stack, math.Log(v))
		case "exp":
			stack = append(stack, math.Exp(v))
		case "sqrt":
			stack = append(stack, math.Sqrt(v))
		default:
			return 0, fmt.Errorf("unsupported function: %s", token)
		}
	}

	if len(stack) != 1 {
		return 0, fmt.Errorf("incorrect expression: %s", expression)
	}
	return stack[0], nil
}
