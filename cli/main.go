package main

import (
	"fmt"
	"log"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gradetools/canvasnb/canvas"
	"github.com/gradetools/canvasnb/config"
)

const version = "0.1.0"

var flags struct {
	courseID   int64
	assignment string
	listRoster bool
	configFile string
	verify     bool
	debug      bool
}

func main() {
	log.SetFlags(0)

	cmdRoot := &cobra.Command{
		Use:   "cnb",
		Short: "exchange rosters, submissions and grades between Canvas and nbgrader",
		Long: "cnb moves course data between the Canvas LMS and a local nbgrader\n" +
			"setup: it downloads rosters and submission attachments, bundles them\n" +
			"for autograding, and pushes scores back to Canvas.",
		Run: CommandRoot,
	}
	cmdRoot.PersistentFlags().Int64VarP(&flags.courseID, "course-id", "c", 0, "Course ID")
	cmdRoot.PersistentFlags().StringVarP(&flags.configFile, "config-file", "i", "", "Config file")
	cmdRoot.PersistentFlags().BoolVarP(&flags.debug, "debug", "", false, "log debug traces")
	cmdRoot.Flags().StringVarP(&flags.assignment, "assignment", "a", "", "Assignment ID")
	cmdRoot.Flags().BoolVarP(&flags.listRoster, "list-students", "l", false, "List Students")
	cmdRoot.Flags().BoolVarP(&flags.verify, "verify", "v", false, "Verify connection")

	cmdVersion := &cobra.Command{
		Use:   "version",
		Short: "print the version number of cnb",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("cnb " + version)
		},
	}
	cmdRoot.AddCommand(cmdVersion)

	addListCommands(cmdRoot)
	addDownloadCommand(cmdRoot)
	addGradeCommands(cmdRoot)
	addPushCommands(cmdRoot)

	cmdRoot.Execute()
}

// CommandRoot reproduces the classic single-command interface: verify
// connectivity, list the roster, or list ungraded submissions for one
// assignment, all driven by flags.
func CommandRoot(cmd *cobra.Command, args []string) {
	initLogging()
	cfg := mustResolveConfig()

	if flags.verify {
		if cfg.CanvasURL == "" {
			fmt.Println("CANVAS_URL not defined")
		}
		if cfg.CanvasToken == "" {
			fmt.Println("CANVAS_TOKEN not defined")
		} else {
			fmt.Printf("Connecting to %s as %s\n", cfg.CanvasURL, cfg.CanvasToken)
		}
		return
	}

	if cfg.CourseID == 0 {
		fmt.Println("Course-id undefined")
		return
	}
	course := mustOpenCourse(cfg)

	if flags.listRoster {
		listStudents(course)
	}
	if flags.assignment != "" {
		listUngraded(course, mustParseID(flags.assignment))
	}
}

func listStudents(course *canvas.Course) {
	ids := make([]int64, 0, len(course.Names))
	for id := range course.Names {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fmt.Printf("%5d %s\n", id, course.Names[id])
	}
}

func listUngraded(course *canvas.Course, assignmentID int64) {
	subs, err := course.Submissions(assignmentID)
	if err != nil {
		log.Fatalf("error listing submissions: %v", err)
	}
	for _, s := range canvas.HasURL(canvas.Ungraded(subs)) {
		fmt.Printf("%s %d %s\n", course.Names[s.UserID], s.UserID, s.URL.String)
	}

	// restart from a fresh fetch, as each listing pass does
	subs, err = course.Submissions(assignmentID)
	if err != nil {
		log.Fatalf("error listing submissions: %v", err)
	}
	for _, s := range canvas.HasAttachments(canvas.Ungraded(subs)) {
		fmt.Printf("%s %d %s\n", course.Names[s.UserID], s.UserID, s.Attachments[0].URL)
	}
}

func initLogging() {
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logrus.SetLevel(logrus.WarnLevel)
	if flags.debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("error loading .env: %v", err)
	}
}
