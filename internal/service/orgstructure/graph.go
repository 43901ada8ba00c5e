package orgstructure

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/organization"
)

type positionNode struct {
	position organization.Position
	parent   int
	children []int
	holder   *employee.Employee
	since    time.Time
}

// orgGraph is an arena of active positions indexed by id with child adjacency
// lists and the current holder of each position.
type orgGraph struct {
	nodes       []positionNode
	byID        map[string]int
	departments map[string]organization.Department
	deptOrder   []string
	deptNodes   map[string][]int
	subDepts    map[string][]string
	employees   []employee.Employee
}

func (s *OrgStructureServiceImpl) loadGraph(ctx context.Context, asOf time.Time) (*orgGraph, error) {
	departments, err := s.orgRepo.ListDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	positions, err := s.orgRepo.ListPositions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	assignments, err := s.orgRepo.ListActiveAssignments(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list position assignments: %w", err)
	}
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return buildGraph(departments, positions, assignments, employees), nil
}

func buildGraph(
	departments []organization.Department,
	positions []organization.Position,
	assignments []organization.PositionAssignment,
	employees []employee.Employee,
) *orgGraph {
	g := &orgGraph{
		byID:        make(map[string]int, len(positions)),
		departments: make(map[string]organization.Department, len(departments)),
		deptNodes:   make(map[string][]int),
		subDepts:    make(map[string][]string),
		employees:   employees,
	}

	for _, d := range departments {
		g.departments[d.ID] = d
		g.deptOrder = append(g.deptOrder, d.ID)
		if d.ParentDepartmentID != nil {
			g.subDepts[*d.ParentDepartmentID] = append(g.subDepts[*d.ParentDepartmentID], d.ID)
		}
	}
	sort.SliceStable(g.deptOrder, func(i, j int) bool {
		return g.departments[g.deptOrder[i]].Name < g.departments[g.deptOrder[j]].Name
	})

	for _, p := range positions {
		if !p.IsActive {
			continue
		}
		g.byID[p.ID] = len(g.nodes)
		g.nodes = append(g.nodes, positionNode{position: p, parent: -1})
	}
	for i := range g.nodes {
		n := &g.nodes[i]
		g.deptNodes[n.position.DepartmentID] = append(g.deptNodes[n.position.DepartmentID], i)
		if n.position.ReportsToPositionID == nil {
			continue
		}
		if p, ok := g.byID[*n.position.ReportsToPositionID]; ok && p != i {
			n.parent = p
			g.nodes[p].children = append(g.nodes[p].children, i)
		}
	}

	byEmployee := make(map[string]int, len(employees))
	for i, e := range employees {
		byEmployee[e.ID] = i
	}
	for _, a := range assignments {
		idx, ok := g.byID[a.PositionID]
		if !ok {
			continue
		}
		ei, ok := byEmployee[a.EmployeeID]
		if !ok || employees[ei].Status.IsTerminal() {
			continue
		}
		n := &g.nodes[idx]
		// the longest-serving holder represents the position
		if n.holder == nil || a.StartDate.Before(n.since) {
			n.holder = &employees[ei]
			n.since = a.StartDate
		}
	}
	return g
}

func (g *orgGraph) filledChildren(idx int) int {
	filled := 0
	for _, c := range g.nodes[idx].children {
		if g.nodes[c].holder != nil {
			filled++
		}
	}
	return filled
}

// descendants returns idx and every position below it in the reporting chain.
func (g *orgGraph) descendants(roots ...int) []int {
	seen := make(map[int]bool, len(roots))
	queue := append([]int(nil), roots...)
	var out []int
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		out = append(out, cur)
		queue = append(queue, g.nodes[cur].children...)
	}
	return out
}

// departmentTree returns the department and all of its sub-departments.
func (g *orgGraph) departmentTree(deptID string) []string {
	seen := map[string]bool{}
	queue := []string{deptID}
	var out []string
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		out = append(out, cur)
		queue = append(queue, g.subDepts[cur]...)
	}
	return out
}

func (g *orgGraph) departmentName(id string) string {
	if d, ok := g.departments[id]; ok {
		return d.Name
	}
	return ""
}

func (g *orgGraph) costCenter(n positionNode) string {
	if n.position.CostCenter != "" {
		return n.position.CostCenter
	}
	if d, ok := g.departments[n.position.DepartmentID]; ok && d.CostCenter != "" {
		return d.CostCenter
	}
	return "UNASSIGNED"
}

// subset narrows the node list to one department.
func (g *orgGraph) subset(deptID string) []int {
	return g.deptNodes[deptID]
}

func (g *orgGraph) all() []int {
	out := make([]int, len(g.nodes))
	for i := range g.nodes {
		out[i] = i
	}
	return out
}
