package solver

import "fmt"

// Prompt builders are pure; user text and language are interpolated verbatim.

const solvePromptBase = `TASK: You are a world-class STEM (Math, Physics, Chemistry) solver.

REQUIREMENTS:
1. Solve the problem COMPLETELY using the shortest and easiest method
2. Provide step-by-step solution with ALL intermediate calculations
3. ALWAYS show the final numerical answer clearly at the end
4. Use simple math symbols (*, /, +, ^) only - NO LaTeX/MathJax
5. Respond in %s language

CRITICAL: You MUST complete ALL calculations and show the final answer. Do not stop mid-calculation.`

// SolvePrompt builds the solve instruction. With an image the model is told to
// solve the problem depicted on the attached image instead of a text statement.
func SolvePrompt(problem, language string, withImage bool) string {
	base := fmt.Sprintf(solvePromptBase, language)
	if withImage {
		return "Solve the math problem shown in the attached image. " + base
	}
	return fmt.Sprintf("Solve the following problem: '%s'. %s", problem, base)
}

const explainPromptFormat = `TASK: You are an expert STEM tutor. Your goal is to simplify the provided detailed solution.
The explanation must be easy to understand for a middle school student, use simple math symbols (*, /, +) only, and be highly efficient.

The original problem was: %s
The detailed solution to simplify is: %s

Provide the simplified explanation in %s language.`

// ExplainPrompt embeds the problem and the prior solution verbatim.
func ExplainPrompt(problem, solution, language string) string {
	return fmt.Sprintf(explainPromptFormat, problem, solution, language)
}
