// Copyright 2024-2026 Firefly Software Solutions Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/fireflyframework/dbt-oxide/internal/graph"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively browse the dependency graph built from a manifest",
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

type nodeItem string

func (n nodeItem) Title() string       { return string(n) }
func (n nodeItem) Description() string { return "" }
func (n nodeItem) FilterValue() string { return string(n) }

var detailStyle = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.RoundedBorder())

type browseModel struct {
	g      *graph.Graph
	list   list.Model
	detail string
	width  int
	height int
}

func newBrowseModel(g *graph.Graph) browseModel {
	nodes := g.Nodes()
	sort.Strings(nodes)
	items := make([]list.Item, len(nodes))
	for i, n := range nodes {
		items[i] = nodeItem(n)
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Graph nodes"

	return browseModel{g: g, list: l}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width/2, msg.Height-4)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(nodeItem); ok {
				m.detail = m.describe(string(item))
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m browseModel) describe(uid string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", uid)

	ancestors := m.g.Ancestors(uid, graph.Unlimited)
	descendants := m.g.Descendants(uid, graph.Unlimited)

	fmt.Fprintf(&b, "ancestors (%d):\n", len(ancestors))
	for _, a := range sortedSet(ancestors) {
		fmt.Fprintf(&b, "  - %s\n", a)
	}

	fmt.Fprintf(&b, "\ndescendants (%d):\n", len(descendants))
	for _, d := range sortedSet(descendants) {
		fmt.Fprintf(&b, "  - %s\n", d)
	}

	return b.String()
}

func (m browseModel) View() string {
	detail := m.detail
	if detail == "" {
		detail = "Select a node and press enter to inspect its ancestors and descendants."
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), detailStyle.Render(detail))
}

func runBrowse(_ *cobra.Command, _ []string) error {
	g, err := buildGraph()
	if err != nil {
		return err
	}

	p := tea.NewProgram(newBrowseModel(g), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
