package memory

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/leave"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/organization"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/payroll"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/performance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var seedNamespace = uuid.MustParse("6f1c3a2e-4d8b-4b8e-9a57-2b1f0e7c9d10")

// seedID derives a stable id so demo links survive restarts.
func seedID(kind string, n int) string {
	return uuid.NewSHA1(seedNamespace, []byte(fmt.Sprintf("%s/%d", kind, n))).String()
}

type seedPosition struct {
	code      string
	title     string
	dept      int
	reportsTo int // index into positions, -1 for none
}

type seedEmployee struct {
	name        string
	position    int // -1 when unassigned
	hiredMonths int
	ageYears    int
	gender      employee.Gender
	contract    employee.ContractType
	status      employee.Status
	salary      int64
}

// Seed builds a small, internally consistent organisation relative to now.
func Seed(now time.Time) *Dataset {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(42))
	ds := &Dataset{}

	deptSeeds := []struct{ code, name, cc string }{
		{"EXEC", "Executive Office", "CC-100"},
		{"ENG", "Engineering", "CC-200"},
		{"FIN", "Finance", "CC-300"},
		{"PPL", "People Operations", "CC-400"},
		{"SLS", "Sales", "CC-500"},
	}
	for i, d := range deptSeeds {
		dept := organization.Department{
			ID:         seedID("department", i),
			Code:       d.code,
			Name:       d.name,
			CostCenter: d.cc,
			IsActive:   true,
		}
		if i > 0 {
			parent := seedID("department", 0)
			dept.ParentDepartmentID = &parent
		}
		ds.Departments = append(ds.Departments, dept)
	}

	posSeeds := []seedPosition{
		{"CEO", "Chief Executive Officer", 0, -1},
		{"ENG-HEAD", "Head of Engineering", 1, 0},
		{"ENG-MGR", "Engineering Manager", 1, 1},
		{"ENG-SR1", "Senior Software Engineer", 1, 2},
		{"ENG-SR2", "Senior Software Engineer", 1, 2},
		{"ENG-SE1", "Software Engineer", 1, 2},
		{"ENG-SE2", "Software Engineer", 1, 2},
		{"ENG-SE3", "Software Engineer", 1, 2},
		{"ENG-QA", "QA Engineer", 1, 1},
		{"FIN-DIR", "Finance Director", 2, 0},
		{"FIN-PAY1", "Payroll Specialist", 2, 9},
		{"FIN-PAY2", "Payroll Specialist", 2, 9},
		{"PPL-MGR", "HR Manager", 3, 0},
		{"PPL-GEN", "HR Generalist", 3, 12},
		{"SLS-LEAD", "Sales Lead", 4, 0},
		{"SLS-AE1", "Account Executive", 4, 14},
		{"SLS-AE2", "Account Executive", 4, 14},
		{"SLS-AE3", "Account Executive", 4, 14},
		{"SLS-MGR", "Regional Sales Manager", 4, 14},
	}
	for i, p := range posSeeds {
		pos := organization.Position{
			ID:           seedID("position", i),
			Code:         p.code,
			Title:        p.title,
			DepartmentID: seedID("department", p.dept),
			IsActive:     true,
		}
		if p.reportsTo >= 0 {
			parent := seedID("position", p.reportsTo)
			pos.ReportsToPositionID = &parent
		}
		ds.Positions = append(ds.Positions, pos)
	}

	empSeeds := []seedEmployee{
		{"Rina Hartono", 0, 200, 52, employee.GenderFemale, employee.ContractPermanent, employee.StatusActive, 42000},
		{"Bagus Santoso", 1, 84, 44, employee.GenderMale, employee.ContractPermanent, employee.StatusActive, 30000},
		{"Dewi Lestari", 2, 30, 37, employee.GenderFemale, employee.ContractPermanent, employee.StatusActive, 22000},
		{"Arif Nugroho", 3, 40, 33, employee.GenderMale, employee.ContractPermanent, employee.StatusActive, 16000},
		{"Sari Wulandari", 4, 9, 29, employee.GenderFemale, employee.ContractPermanent, employee.StatusActive, 15500},
		{"Yoga Pratama", 5, 4, 24, employee.GenderMale, employee.ContractProbation, employee.StatusProbation, 9000},
		{"Putri Anggraini", 6, 20, 27, employee.GenderFemale, employee.ContractFixedTerm, employee.StatusActive, 10500},
		{"Kevin Halim", 8, 15, 31, employee.GenderMale, employee.ContractPermanent, employee.StatusOnLeave, 11000},
		{"Maya Kusuma", 9, 130, 49, employee.GenderFemale, employee.ContractPermanent, employee.StatusActive, 28000},
		{"Hendra Wijaya", 10, 26, 35, employee.GenderMale, employee.ContractPermanent, employee.StatusActive, 9500},
		{"Lina Marlina", 11, 2, 23, employee.GenderFemale, employee.ContractInternship, employee.StatusProbation, 4000},
		{"Fajar Ramadhan", 12, 60, 41, employee.GenderMale, employee.ContractPermanent, employee.StatusActive, 19000},
		{"Nadia Putri", 13, 7, 26, employee.GenderFemale, employee.ContractFixedTerm, employee.StatusActive, 8000},
		{"Rudi Hermawan", 14, 190, 58, employee.GenderMale, employee.ContractPermanent, employee.StatusActive, 26000},
		{"Intan Permata", 15, 11, 28, employee.GenderFemale, employee.ContractPermanent, employee.StatusActive, 8500},
		{"Galih Saputra", 16, 33, 30, employee.GenderMale, employee.ContractPermanent, employee.StatusActive, 8700},
		{"Tomi Setiawan", -1, 5, 34, employee.GenderOther, employee.ContractFreelance, employee.StatusActive, 6000},
		{"Andi Firmansyah", 7, 18, 32, employee.GenderMale, employee.ContractPermanent, employee.StatusTerminated, 10000},
		{"Citra Dewanti", 17, 14, 26, employee.GenderFemale, employee.ContractPermanent, employee.StatusTerminated, 8200},
		{"Bambang Susilo", 18, 240, 63, employee.GenderMale, employee.ContractPermanent, employee.StatusRetired, 21000},
	}

	terminatedMonthsAgo := map[int]int{17: 2, 18: 5, 19: 8}

	for i, s := range empSeeds {
		hire := today.AddDate(0, -s.hiredMonths, -rng.Intn(20))
		birth := today.AddDate(-s.ageYears, -rng.Intn(11), -rng.Intn(27))
		emp := employee.Employee{
			ID:                seedID("employee", i),
			EmployeeCode:      fmt.Sprintf("EMP%04d", i+1),
			FullName:          s.name,
			Email:             fmt.Sprintf("employee%02d@example.com", i+1),
			Phone:             fmt.Sprintf("+62812%07d", 1000000+i*7919),
			NationalID:        fmt.Sprintf("3174%012d", 100000+i),
			BankAccountNumber: fmt.Sprintf("00%08d", 5550000+i),
			Address:           "Jl. Sudirman No. " + fmt.Sprint(i+1) + ", Jakarta",
			EmergencyContact:  "Family +62811000" + fmt.Sprintf("%04d", i),
			HireDate:          hire,
			Status:            s.status,
			BirthDate:         &birth,
			Gender:            s.gender,
			ContractType:      s.contract,
			Skills:            []string{"communication"},
		}
		// gaps for the profile-health checks
		switch i {
		case 6:
			emp.EmergencyContact = ""
			emp.Phone = "12-34"
		case 10:
			emp.BankAccountNumber = ""
			emp.BirthDate = nil
		case 16:
			emp.Email = "tomi.setiawan-at-example"
		}
		if s.position >= 0 {
			deptID := seedID("department", posSeeds[s.position].dept)
			posID := seedID("position", s.position)
			emp.DepartmentID = &deptID
			emp.PositionID = &posID

			a := organization.PositionAssignment{
				ID:         seedID("assignment", i),
				EmployeeID: emp.ID,
				PositionID: posID,
				StartDate:  hire,
			}
			if ago, ok := terminatedMonthsAgo[i]; ok {
				end := today.AddDate(0, -ago, 0)
				a.EndDate = &end
			}
			ds.Assignments = append(ds.Assignments, a)
		}
		ds.Employees = append(ds.Employees, emp)

		if ago, ok := terminatedMonthsAgo[i]; ok {
			ds.AuditLog = append(ds.AuditLog, employee.AuditEntry{
				ID:          seedID("audit", i),
				EmployeeID:  emp.ID,
				Action:      employee.AuditStatusChange,
				AfterStatus: s.status,
				OccurredAt:  today.AddDate(0, -ago, 0),
			})
		}
	}

	seedPayroll(ds, empSeeds, today)
	seedAttendance(ds, empSeeds, today, rng)
	seedAppraisals(ds, empSeeds, today, rng)
	seedLeave(ds, empSeeds, today, rng)

	return ds
}

func seedPayroll(ds *Dataset, emps []seedEmployee, today time.Time) {
	entity := "entity-jakarta"
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	for m := 6; m >= 1; m-- {
		start := firstOfMonth.AddDate(0, -m, 0)
		end := start.AddDate(0, 1, -1)
		approved := end.AddDate(0, 0, 2)
		run := payroll.Run{
			ID:          seedID("run", m),
			EntityID:    &entity,
			PeriodStart: start,
			PeriodEnd:   end,
			Status:      payroll.RunStatusApproved,
			ApprovedAt:  &approved,
		}

		total := decimal.Zero
		count := 0
		for i, e := range emps {
			if e.status.IsTerminal() && m <= 2 {
				continue
			}
			// payroll grows a little each month
			gross := decimal.NewFromInt(e.salary).Mul(decimal.NewFromFloat(1 + 0.01*float64(6-m)))
			tax := gross.Mul(decimal.NewFromFloat(0.05)).Round(2)
			bpjs := gross.Mul(decimal.NewFromFloat(0.03)).Round(2)
			net := gross.Sub(tax).Sub(bpjs)
			ds.Payslips = append(ds.Payslips, payroll.Payslip{
				ID:              seedID(fmt.Sprintf("payslip/%d", m), i),
				RunID:           run.ID,
				EmployeeID:      seedID("employee", i),
				EmployeeName:    e.name,
				GrossPay:        gross,
				TotalDeductions: tax.Add(bpjs),
				NetPay:          net,
				Earnings:        []payroll.LineItem{{Name: "Base Salary", Amount: gross}},
				Deductions:      []payroll.LineItem{{Name: "Income Tax", Amount: tax}, {Name: "BPJS", Amount: bpjs}},
			})
			total = total.Add(net)
			count++
		}
		run.TotalNetPay = total
		run.EmployeeCount = count
		if m == 1 {
			run.ExceptionCount = 2
		}
		ds.Runs = append(ds.Runs, run)
	}

	ds.Runs = append(ds.Runs, payroll.Run{
		ID:          seedID("run", 0),
		EntityID:    &entity,
		PeriodStart: firstOfMonth,
		PeriodEnd:   firstOfMonth.AddDate(0, 1, -1),
		Status:      payroll.RunStatusDraft,
	})
}

// seedAttendance leaves employees 16 and the terminated staff without punches in the
// latest run so ghost detection has something to find.
func seedAttendance(ds *Dataset, emps []seedEmployee, today time.Time, rng *rand.Rand) {
	start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -2, 0)
	n := 0
	for day := start; day.Before(today); day = day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		for i, e := range emps {
			if i == 16 || e.status.IsTerminal() || e.status == employee.StatusOnLeave {
				continue
			}
			n++
			rec := attendance.Record{
				ID:         seedID("attendance", n),
				EmployeeID: seedID("employee", i),
				Date:       day,
				Status:     attendance.StatusOnTime,
			}
			roll := rng.Intn(100)
			switch {
			case roll < 4:
				rec.Status = attendance.StatusAbsent
			case roll < 7:
				rec.Status = attendance.StatusLeave
			default:
				late := 0
				if roll < 20 {
					late = 5 + rng.Intn(40)
					rec.Status = attendance.StatusLate
				}
				in := day.Add(9*time.Hour + time.Duration(late)*time.Minute)
				rec.ClockIn = &in
				rec.LateMinutes = late
				if roll%17 != 0 {
					overtime := 0
					if roll > 85 {
						overtime = 30 + rng.Intn(120)
					}
					out := day.Add(18*time.Hour + time.Duration(overtime)*time.Minute)
					rec.ClockOut = &out
					rec.OvertimeMinutes = overtime
					rec.WorkedMinutes = int(out.Sub(in).Minutes()) - 60
				}
			}
			ds.Attendance = append(ds.Attendance, rec)
		}
	}
}

func seedAppraisals(ds *Dataset, emps []seedEmployee, today time.Time, rng *rand.Rand) {
	raters := []int{0, 1, 2, 9, 12, 14}
	potentials := []performance.PotentialRating{performance.PotentialLow, performance.PotentialMedium, performance.PotentialHigh}
	n := 0
	for cycle := 0; cycle < 2; cycle++ {
		published := today.AddDate(0, -2-cycle*6, 0)
		for i, e := range emps {
			if e.status.IsTerminal() || e.hiredMonths < 3 || i == 0 {
				continue
			}
			n++
			rater := raters[(i+cycle)%len(raters)]
			score := 2.2 + rng.Float64()*2.6
			if rater == 14 {
				score = 4.6 + rng.Float64()*0.4
			}
			a := performance.Appraisal{
				ID:          seedID("appraisal", n),
				EmployeeID:  seedID("employee", i),
				CycleID:     seedID("cycle", cycle),
				RaterID:     seedID("employee", rater),
				Score:       float64(int(score*10)) / 10,
				Status:      performance.StatusPublished,
				PublishedAt: published,
			}
			if i%4 != 0 {
				p := potentials[rng.Intn(len(potentials))]
				a.Potential = &p
			}
			ds.Appraisals = append(ds.Appraisals, a)
		}
	}
}

func seedLeave(ds *Dataset, emps []seedEmployee, today time.Time, rng *rand.Rand) {
	types := []struct{ id, name string }{
		{"annual", "Annual Leave"},
		{"sick", "Sick Leave"},
		{"unpaid", "Unpaid Leave"},
	}
	statuses := []leave.RequestStatus{
		leave.RequestStatusApproved, leave.RequestStatusApproved, leave.RequestStatusApproved,
		leave.RequestStatusPending, leave.RequestStatusRejected, leave.RequestStatusCancelled,
	}
	yearStart := time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	for i, e := range emps {
		if e.status.IsTerminal() {
			continue
		}
		taken := 0.0
		for k := 0; k < 3; k++ {
			n++
			lt := types[rng.Intn(len(types))]
			start := yearStart.AddDate(0, 0, rng.Intn(int(today.Sub(yearStart).Hours()/24)+1))
			days := float64(1 + rng.Intn(4))
			created := start.AddDate(0, 0, -7)
			req := leave.Request{
				ID:            seedID("leave", n),
				EmployeeID:    seedID("employee", i),
				LeaveTypeID:   lt.id,
				LeaveTypeName: lt.name,
				StartDate:     start,
				EndDate:       start.AddDate(0, 0, int(days)-1),
				Days:          days,
				Status:        statuses[rng.Intn(len(statuses))],
				CreatedAt:     created,
			}
			if req.Status != leave.RequestStatusPending {
				decided := created.Add(time.Duration(6+rng.Intn(90)) * time.Hour)
				req.DecidedAt = &decided
			}
			if req.Status == leave.RequestStatusApproved && lt.id == "annual" {
				taken += days
			}
			ds.Requests = append(ds.Requests, req)
		}
		accrued := 12.0 * float64(today.Month()) / 12
		ds.Balances = append(ds.Balances, leave.Balance{
			EmployeeID:    seedID("employee", i),
			LeaveTypeID:   "annual",
			LeaveTypeName: "Annual Leave",
			Year:          today.Year(),
			Entitlement:   12,
			Accrued:       accrued,
			Taken:         taken,
			Remaining:     accrued - taken,
		})
	}
}
