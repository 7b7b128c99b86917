package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/gradetools/canvasnb/canvas"
	"github.com/gradetools/canvasnb/nbgrader"
)

func addDownloadCommand(root *cobra.Command) {
	cmdDownload := &cobra.Command{
		Use:   "download <assignment id>",
		Short: "bundle submission attachments into a zip archive",
		Long: "Downloads the attachments of every matching submission and writes\n" +
			"them to downloaded/<lab>/archive/submissions.zip with one uniquely\n" +
			"named notebook per student, ready for 'nbgrader zip_collect'.",
		Run: CommandDownload,
	}
	cmdDownload.Flags().String("lab", "", "lab directory name under downloaded/")
	cmdDownload.Flags().String("nb", "", "nbgrader assignment (notebook) name")
	cmdDownload.Flags().Bool("ungraded", false, "only submissions with no posted grade")
	cmdDownload.Flags().Bool("resubmitted", false, "only ungraded or resubmitted submissions")
	cmdDownload.Flags().Int64("user", 0, "only one user's submission")
	cmdDownload.MarkFlagRequired("lab")
	cmdDownload.MarkFlagRequired("nb")
	root.AddCommand(cmdDownload)
}

func CommandDownload(cmd *cobra.Command, args []string) {
	initLogging()
	if len(args) != 1 {
		cmd.Help()
		return
	}
	assignmentID := mustParseID(args[0])

	cfg := mustResolveConfig()
	if cfg.CourseID == 0 {
		log.Fatalf("Course-id undefined")
	}
	course := mustOpenCourse(cfg)

	lab, _ := cmd.Flags().GetString("lab")
	nbName, _ := cmd.Flags().GetString("nb")
	var filters []canvas.Filter
	if ungraded, _ := cmd.Flags().GetBool("ungraded"); ungraded {
		filters = append(filters, canvas.Ungraded)
	}
	if resubmitted, _ := cmd.Flags().GetBool("resubmitted"); resubmitted {
		filters = append(filters, canvas.UngradedOrUnmatching)
	}
	if user, _ := cmd.Flags().GetInt64("user"); user != 0 {
		filters = append(filters, canvas.FromUser(user))
	}

	if err := nbgrader.New().InitDownloadsArea(lab); err != nil {
		log.Fatalf("error preparing download area: %v", err)
	}
	if err := course.DownloadSubmissionsWithAttachments(assignmentID, lab, nbName, filters...); err != nil {
		log.Fatalf("error downloading submissions: %v", err)
	}
}
