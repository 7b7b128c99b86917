package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/gradetools/canvasnb/canvas"
	"github.com/gradetools/canvasnb/nbgrader"
)

func addListCommands(root *cobra.Command) {
	cmdCourses := &cobra.Command{
		Use:   "courses",
		Short: "list the courses visible to your credential",
		Run:   CommandCourses,
	}
	root.AddCommand(cmdCourses)

	cmdStudents := &cobra.Command{
		Use:   "students",
		Short: "export the course roster for nbgrader",
		Long: "Writes the enrolled students to students.csv in nbgrader's\n" +
			"import format (id, last_name, first_name, email).",
		Run: CommandStudents,
	}
	cmdStudents.Flags().Bool("xlsx", false, "also export students.xlsx")
	cmdStudents.Flags().Bool("import", false, "import the roster into the nbgrader database")
	root.AddCommand(cmdStudents)
}

func CommandCourses(cmd *cobra.Command, args []string) {
	initLogging()
	client, err := canvas.NewClient(mustResolveConfig())
	if err != nil {
		log.Fatalf("error connecting to Canvas: %v", err)
	}
	if err := client.ListCourses(os.Stdout); err != nil {
		log.Fatalf("error listing courses: %v", err)
	}
}

func CommandStudents(cmd *cobra.Command, args []string) {
	initLogging()
	cfg := mustResolveConfig()
	if cfg.CourseID == 0 {
		log.Fatalf("Course-id undefined")
	}
	course := mustOpenCourse(cfg)

	if err := course.DownloadStudents(); err != nil {
		log.Fatalf("error exporting roster: %v", err)
	}
	if xlsx, _ := cmd.Flags().GetBool("xlsx"); xlsx {
		if err := course.DownloadStudentsXLSX(); err != nil {
			log.Fatalf("error exporting roster spreadsheet: %v", err)
		}
	}
	if doImport, _ := cmd.Flags().GetBool("import"); doImport {
		if err := nbgrader.New().ImportStudents(); err != nil {
			log.Fatalf("error importing roster into nbgrader: %v", err)
		}
	}
}
