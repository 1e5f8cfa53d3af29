package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jangler/microtune/tuning"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
	activeStyle = lipgloss.NewStyle().Reverse(true)
)

// print the bank tabs and the tunings of the selected bank
func printBank(w io.Writer, s *tuning.Store) {
	var tabs []string
	for i, name := range s.BankNames() {
		if i == s.SelectedBankIndex() {
			tabs = append(tabs, activeStyle.Render(" "+name+" "))
		} else {
			tabs = append(tabs, dimStyle.Render(" "+name+" "))
		}
	}
	fmt.Fprintln(w, strings.Join(tabs, " "))

	b := s.Bank(s.SelectedBankIndex())
	if b == nil {
		return
	}
	width := len(fmt.Sprint(len(b.Tunings) - 1))
	for i, t := range b.Tunings {
		line := fmt.Sprintf("%*d  %3d  %s", width, i, t.NPO(), t.Name)
		if i == s.SelectedTuningIndex() {
			fmt.Fprintln(w, activeStyle.Render(line))
		} else {
			fmt.Fprintln(w, line)
		}
	}
}

// print the degrees of a tuning and one octave of its frequency table
func printTuning(w io.Writer, name string, set []float64, t *tuning.Table, a4 float64) {
	fmt.Fprintln(w, headerStyle.Render(name))
	for i, r := range set {
		fmt.Fprintf(w, "%3d  %12.6f  %9.3fc\n", i, r, 1200*math.Log2(r))
	}
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%d notes per octave, A4 = %.2f Hz",
		len(t.Scale), a4)))
	for i := range t.Scale {
		n := 60 + i
		if n >= len(t.Frequencies) {
			break
		}
		fmt.Fprintf(w, "%3d  %10.3f Hz\n", n, t.Frequencies[n])
	}
}
