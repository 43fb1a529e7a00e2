// ABOUTME: Directory commands - companies, departments, employees, faculties, regions, labs
// ABOUTME: One generic CRUD runner parameterized by flag parsing and table shape

package main

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/atlasrobotics/atlas-console/internal/app"
	"github.com/atlasrobotics/atlas-console/internal/model"
	"github.com/atlasrobotics/atlas-console/internal/state"
)

// entitySpec describes how one directory collection is parsed and printed.
type entitySpec[T any] struct {
	title   string
	usage   string
	id      func(T) string
	parse   func(args []string) (any, error)
	columns []string
	row     func(T) []string
}

// runEntity is the shared list/get/create/update/delete command loop.
func runEntity[T any](c *console, res *app.Resource[T], spec entitySpec[T], args []string) error {
	subcmd := "list"
	if len(args) > 0 {
		subcmd = args[0]
		args = args[1:]
	}

	ctx, cancel := cmdCtx(c)
	defer cancel()

	switch subcmd {
	case "list", "ls":
		query := url.Values{}
		for i := 0; i < len(args); i++ {
			if args[i] == "--page" || args[i] == "-p" {
				if i+1 < len(args) {
					query.Set("page", args[i+1])
					i++
				}
			}
		}
		items, err := res.List(ctx, query)
		if err != nil {
			return err
		}
		printEntityTable(spec, items, res.Store.State().Page)
		return nil

	case "get", "show":
		if len(args) < 1 {
			return usagef("usage: %s get <id>", spec.title)
		}
		item, err := res.Get(ctx, args[0])
		if err != nil {
			return err
		}
		printEntityDetail(spec, *item)
		return nil

	case "create", "add":
		payload, err := spec.parse(args)
		if err != nil {
			return err
		}
		_, err = res.Create(ctx, payload)
		return err

	case "update":
		if len(args) < 1 {
			return usagef("usage: %s update <id> %s", spec.title, spec.usage)
		}
		payload, err := spec.parse(args[1:])
		if err != nil {
			return err
		}
		_, err = res.Update(ctx, args[0], payload)
		return err

	case "delete", "rm", "remove":
		if len(args) < 1 {
			return usagef("usage: %s delete <id>", spec.title)
		}
		return res.Delete(ctx, args[0])

	default:
		return usagef("unknown %s subcommand: %s (use list, get, create, update, delete)", spec.title, subcmd)
	}
}

func printEntityTable[T any](spec entitySpec[T], items []T, page state.Pagination) {
	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  " + spec.title)
	cyan.Println("  " + dashes(len(spec.title)))

	if len(items) == 0 {
		fmt.Printf("  (no %s)\n\n", strings.ToLower(spec.title))
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := "  ID"
	underline := "  --"
	for _, col := range spec.columns {
		header += "\t" + col
		underline += "\t" + dashes(len(col))
	}
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, underline)
	for _, item := range items {
		line := "  " + truncate(spec.id(item), 12)
		for _, cell := range spec.row(item) {
			line += "\t" + cell
		}
		fmt.Fprintln(w, line)
	}
	w.Flush()

	if page.TotalPages > 0 {
		fmt.Printf("\n  page %d of %d (%d total)\n", page.Current, page.TotalPages, page.TotalItems)
	}
	fmt.Println()
}

func printEntityDetail[T any](spec entitySpec[T], item T) {
	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  " + spec.title)
	cyan.Println("  " + dashes(len(spec.title)))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  ID\t%s\n", spec.id(item))
	cells := spec.row(item)
	for i, col := range spec.columns {
		if i < len(cells) {
			fmt.Fprintf(w, "  %s\t%s\n", col, cells[i])
		}
	}
	w.Flush()
	fmt.Println()
}

func cmdCompanies(c *console, args []string) error {
	spec := entitySpec[model.Company]{
		title:   "Companies",
		usage:   "--name <name> --region <region-id>",
		id:      func(e model.Company) string { return e.ID },
		columns: []string{"NAME", "REGION", "CREATED"},
		parse: func(args []string) (any, error) {
			var p model.CompanyPayload
			for i := 0; i < len(args); i++ {
				switch args[i] {
				case "--name", "-n":
					if i+1 < len(args) {
						p.Name = args[i+1]
						i++
					}
				case "--region", "-r":
					if i+1 < len(args) {
						p.RegionID = args[i+1]
						i++
					}
				}
			}
			return p, nil
		},
		row: func(e model.Company) []string {
			return []string{truncate(e.Name, 32), truncate(e.RegionID, 12), fmtTime(e.CreatedAt)}
		},
	}
	return runEntity(c, c.app.Companies, spec, args)
}

func cmdDepartments(c *console, args []string) error {
	spec := entitySpec[model.Department]{
		title:   "Departments",
		usage:   "--name <name> --company <company-id>",
		id:      func(e model.Department) string { return e.ID },
		columns: []string{"NAME", "COMPANY", "CREATED"},
		parse: func(args []string) (any, error) {
			var p model.DepartmentPayload
			for i := 0; i < len(args); i++ {
				switch args[i] {
				case "--name", "-n":
					if i+1 < len(args) {
						p.Name = args[i+1]
						i++
					}
				case "--company", "-c":
					if i+1 < len(args) {
						p.CompanyID = args[i+1]
						i++
					}
				}
			}
			return p, nil
		},
		row: func(e model.Department) []string {
			return []string{truncate(e.Name, 32), truncate(e.CompanyID, 12), fmtTime(e.CreatedAt)}
		},
	}
	return runEntity(c, c.app.Departments, spec, args)
}

func cmdEmployees(c *console, args []string) error {
	spec := entitySpec[model.Employee]{
		title:   "Employees",
		usage:   "--name <name> --email <addr> --position <title> --department <dept-id>",
		id:      func(e model.Employee) string { return e.ID },
		columns: []string{"NAME", "EMAIL", "POSITION", "DEPARTMENT"},
		parse: func(args []string) (any, error) {
			var p model.EmployeePayload
			for i := 0; i < len(args); i++ {
				switch args[i] {
				case "--name", "-n":
					if i+1 < len(args) {
						p.Name = args[i+1]
						i++
					}
				case "--email", "-e":
					if i+1 < len(args) {
						p.Email = args[i+1]
						i++
					}
				case "--position":
					if i+1 < len(args) {
						p.Position = args[i+1]
						i++
					}
				case "--department", "-d":
					if i+1 < len(args) {
						p.DepartmentID = args[i+1]
						i++
					}
				}
			}
			return p, nil
		},
		row: func(e model.Employee) []string {
			return []string{truncate(e.Name, 24), truncate(e.Email, 28), truncate(e.Position, 20), truncate(e.DepartmentID, 12)}
		},
	}
	return runEntity(c, c.app.Employees, spec, args)
}

func cmdFaculties(c *console, args []string) error {
	spec := entitySpec[model.Faculty]{
		title:   "Faculties",
		usage:   "--name <name> --email <addr> --subject <subject> --lab <lab-id>",
		id:      func(e model.Faculty) string { return e.ID },
		columns: []string{"NAME", "EMAIL", "SUBJECT", "LAB"},
		parse: func(args []string) (any, error) {
			var p model.FacultyPayload
			for i := 0; i < len(args); i++ {
				switch args[i] {
				case "--name", "-n":
					if i+1 < len(args) {
						p.Name = args[i+1]
						i++
					}
				case "--email", "-e":
					if i+1 < len(args) {
						p.Email = args[i+1]
						i++
					}
				case "--subject", "-s":
					if i+1 < len(args) {
						p.Subject = args[i+1]
						i++
					}
				case "--lab", "-l":
					if i+1 < len(args) {
						p.LabID = args[i+1]
						i++
					}
				}
			}
			return p, nil
		},
		row: func(e model.Faculty) []string {
			return []string{truncate(e.Name, 24), truncate(e.Email, 28), truncate(e.Subject, 20), truncate(e.LabID, 12)}
		},
	}
	return runEntity(c, c.app.Faculties, spec, args)
}

func cmdRegions(c *console, args []string) error {
	spec := entitySpec[model.Region]{
		title:   "Regions",
		usage:   "--name <name> --code <CODE>",
		id:      func(e model.Region) string { return e.ID },
		columns: []string{"NAME", "CODE", "CREATED"},
		parse: func(args []string) (any, error) {
			var p model.RegionPayload
			for i := 0; i < len(args); i++ {
				switch args[i] {
				case "--name", "-n":
					if i+1 < len(args) {
						p.Name = args[i+1]
						i++
					}
				case "--code", "-c":
					if i+1 < len(args) {
						p.Code = args[i+1]
						i++
					}
				}
			}
			return p, nil
		},
		row: func(e model.Region) []string {
			return []string{truncate(e.Name, 32), e.Code, fmtTime(e.CreatedAt)}
		},
	}
	return runEntity(c, c.app.Regions, spec, args)
}

func cmdLabs(c *console, args []string) error {
	spec := entitySpec[model.RoboticsLab]{
		title:   "Robotics Labs",
		usage:   "--name <name> --region <region-id> --capacity <n>",
		id:      func(e model.RoboticsLab) string { return e.ID },
		columns: []string{"NAME", "REGION", "CAPACITY"},
		parse: func(args []string) (any, error) {
			var p model.LabPayload
			for i := 0; i < len(args); i++ {
				switch args[i] {
				case "--name", "-n":
					if i+1 < len(args) {
						p.Name = args[i+1]
						i++
					}
				case "--region", "-r":
					if i+1 < len(args) {
						p.RegionID = args[i+1]
						i++
					}
				case "--capacity", "-c":
					if i+1 < len(args) {
						n, err := strconv.Atoi(args[i+1])
						if err != nil {
							return p, usagef("invalid capacity: %s", args[i+1])
						}
						p.Capacity = n
						i++
					}
				}
			}
			return p, nil
		},
		row: func(e model.RoboticsLab) []string {
			return []string{truncate(e.Name, 32), truncate(e.RegionID, 12), strconv.Itoa(e.Capacity)}
		},
	}
	return runEntity(c, c.app.Labs, spec, args)
}
