package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/gradetools/canvasnb/canvas"
	"github.com/gradetools/canvasnb/nbgrader"
	"github.com/gradetools/canvasnb/types"
)

func addPushCommands(root *cobra.Command) {
	cmdPush := &cobra.Command{
		Use:   "push <assignment id>",
		Short: "push scores from a grade export back to Canvas",
		Long: "Reads an nbgrader grade export and posts a numeric score for every\n" +
			"matching submission. By default a submission whose student has no\n" +
			"score in the export aborts the push; --lenient skips it with a\n" +
			"notice instead.",
		Run: CommandPush,
	}
	cmdPush.Flags().String("grades", "grades.csv", "grade export file")
	cmdPush.Flags().String("nb", "", "restrict the export to one nbgrader assignment")
	cmdPush.Flags().Bool("lenient", false, "skip students missing from the export")
	root.AddCommand(cmdPush)

	cmdPassFail := &cobra.Command{
		Use:   "passfail <assignment id>",
		Short: "mark submissions complete or incomplete from a grade export",
		Run:   CommandPassFail,
	}
	cmdPassFail.Flags().String("grades", "grades.csv", "grade export file")
	cmdPassFail.Flags().String("nb", "", "restrict the export to one nbgrader assignment")
	cmdPassFail.Flags().Float64("threshold", 0, "minimum passing score (exclusive)")
	root.AddCommand(cmdPassFail)

	cmdComment := &cobra.Command{
		Use:   "comment <assignment id> <text>",
		Short: "attach the same text comment to every submission",
		Run:   CommandComment,
	}
	root.AddCommand(cmdComment)
}

func CommandPush(cmd *cobra.Command, args []string) {
	initLogging()
	if len(args) != 1 {
		cmd.Help()
		return
	}
	course, subs := gatherSubmissions(args[0])
	grades := readExport(cmd)

	if lenient, _ := cmd.Flags().GetBool("lenient"); lenient {
		asStrings := make(map[int64]string, len(grades))
		for id, score := range grades {
			asStrings[id] = fmt.Sprintf("%d", int(score))
		}
		if err := course.SetGrade(subs, asStrings); err != nil {
			log.Fatalf("error posting grades: %v", err)
		}
		return
	}
	if err := course.SetScore(subs, grades); err != nil {
		log.Fatalf("error posting scores: %v", err)
	}
}

func CommandPassFail(cmd *cobra.Command, args []string) {
	initLogging()
	if len(args) != 1 {
		cmd.Help()
		return
	}
	course, subs := gatherSubmissions(args[0])
	grades := readExport(cmd)
	threshold, _ := cmd.Flags().GetFloat64("threshold")

	var pass, fail []*types.Submission
	for _, s := range subs {
		if grades[s.UserID] > threshold {
			pass = append(pass, s)
		} else {
			fail = append(fail, s)
		}
	}
	if err := course.UpdateToPass(pass); err != nil {
		log.Fatalf("error marking submissions complete: %v", err)
	}
	if err := course.UpdateToFail(fail); err != nil {
		log.Fatalf("error marking submissions incomplete: %v", err)
	}
}

func CommandComment(cmd *cobra.Command, args []string) {
	initLogging()
	if len(args) != 2 {
		cmd.Help()
		return
	}
	course, subs := gatherSubmissions(args[0])
	if err := course.AddComment(subs, args[1]); err != nil {
		log.Fatalf("error commenting on submissions: %v", err)
	}
}

// gatherSubmissions opens the configured course and fetches the
// submissions with attachments for one assignment.
func gatherSubmissions(arg string) (*canvas.Course, []*types.Submission) {
	assignmentID := mustParseID(arg)
	cfg := mustResolveConfig()
	if cfg.CourseID == 0 {
		log.Fatalf("Course-id undefined")
	}
	course := mustOpenCourse(cfg)
	subs, err := course.Submissions(assignmentID)
	if err != nil {
		log.Fatalf("error listing submissions: %v", err)
	}
	return course, canvas.HasAttachments(subs)
}

func readExport(cmd *cobra.Command) map[int64]float64 {
	file, _ := cmd.Flags().GetString("grades")
	nbName, _ := cmd.Flags().GetString("nb")
	grades, err := nbgrader.ReadGrades(file, nbName)
	if err != nil {
		log.Fatalf("error reading %s: %v", file, err)
	}
	return grades
}
