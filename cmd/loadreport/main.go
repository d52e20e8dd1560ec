package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"

	"schoolku_backend/internals/configs"
	database "schoolku_backend/internals/databases"
	dirRepo "schoolku_backend/internals/features/school/directory/repository"
	"schoolku_backend/internals/features/school/timetables/model"
	ttRepo "schoolku_backend/internals/features/school/timetables/repository"
	ttService "schoolku_backend/internals/features/school/timetables/service"
)

func main() {
	dayFlag := flag.String("day", "", "day of week, e.g. Monday")
	year := flag.String("year", "", "academic year, e.g. 2024/2025")
	flag.Parse()

	day, err := model.ParseDay(*dayFlag)
	if err != nil || *year == "" {
		color.Red("usage: loadreport -day Monday -year 2024/2025")
		os.Exit(2)
	}

	configs.LoadEnv()
	if err := database.ConnectDB(); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	svc := ttService.New(ttRepo.NewGormStore(database.DB), nil, configs.MaxDailyPeriods())
	rows, err := svc.LoadReport(ctx, day, *year)
	if err != nil {
		log.Fatalf("[ERROR] load report: %v", err)
	}
	names := teacherNames(ctx, dirRepo.NewGormStore(database.DB), rows)

	color.Yellow("\nTeacher load, %s %s (max %d per day)", day, *year, svc.MaxPerDay())
	render(os.Stdout, rows, names, svc.MaxPerDay())
}

func teacherNames(ctx context.Context, store dirRepo.Store, rows []ttService.TeacherLoad) map[uuid.UUID]string {
	out := make(map[uuid.UUID]string, len(rows))
	for _, r := range rows {
		t, err := store.GetTeacher(ctx, r.TeacherID)
		if err != nil {
			continue
		}
		out[r.TeacherID] = t.TeacherName
	}
	return out
}

// render prints one row per teacher; teachers at the cap are flagged FULL.
func render(w io.Writer, rows []ttService.TeacherLoad, names map[uuid.UUID]string, maxPerDay int) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "no periods scheduled")
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Rank", "Teacher", "Name", "Periods", "Remaining", "Status"})

	for i, r := range rows {
		remaining := maxPerDay - r.Periods
		status := "ok"
		if remaining <= 0 {
			remaining = 0
			status = "FULL"
		}
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			r.TeacherID.String(),
			names[r.TeacherID],
			fmt.Sprintf("%d", r.Periods),
			fmt.Sprintf("%d", remaining),
			status,
		})
	}
	table.Render()
}
