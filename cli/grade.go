package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/gradetools/canvasnb/canvas"
	"github.com/gradetools/canvasnb/nbgrader"
)

func addGradeCommands(root *cobra.Command) {
	cmdAutograde := &cobra.Command{
		Use:   "autograde <assignment id> <nb name>",
		Short: "autograde downloaded submissions with nbgrader",
		Long: "Runs 'nbgrader autograde' for every matching submission of the\n" +
			"assignment and exports the grade database to grades.csv when done.\n" +
			"Failures are reported per student and do not stop the run.",
		Run: CommandAutograde,
	}
	cmdAutograde.Flags().Bool("all", false, "grade every submission, not just ungraded/resubmitted ones")
	root.AddCommand(cmdAutograde)

	cmdCollect := &cobra.Command{
		Use:   "collect <nb name>",
		Short: "run 'nbgrader zip_collect' on the downloaded archive",
		Run:   CommandCollect,
	}
	root.AddCommand(cmdCollect)
}

func CommandAutograde(cmd *cobra.Command, args []string) {
	initLogging()
	if len(args) != 2 {
		cmd.Help()
		return
	}
	assignmentID, nbName := mustParseID(args[0]), args[1]

	cfg := mustResolveConfig()
	if cfg.CourseID == 0 {
		log.Fatalf("Course-id undefined")
	}
	course := mustOpenCourse(cfg)

	tool := nbgrader.New()
	if err := tool.CheckVersion(); err != nil {
		log.Fatalf("%v", err)
	}

	subs, err := course.Submissions(assignmentID)
	if err != nil {
		log.Fatalf("error listing submissions: %v", err)
	}
	subs = canvas.HasAttachments(subs)
	if all, _ := cmd.Flags().GetBool("all"); !all {
		subs = canvas.UngradedOrUnmatching(subs)
	}

	failed := tool.Autograde(nbName, subs)
	if len(failed) > 0 {
		fmt.Printf("%d of %d submissions failed to autograde\n", len(failed), len(subs))
	}
	if err := tool.Export(); err != nil {
		log.Fatalf("error exporting grades: %v", err)
	}
}

func CommandCollect(cmd *cobra.Command, args []string) {
	initLogging()
	if len(args) != 1 {
		cmd.Help()
		return
	}
	if err := nbgrader.New().ZipCollect(args[0]); err != nil {
		log.Fatalf("error collecting submissions: %v", err)
	}
}
