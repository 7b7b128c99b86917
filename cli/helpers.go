package main

import (
	"log"
	"strconv"

	"github.com/gradetools/canvasnb/canvas"
	"github.com/gradetools/canvasnb/config"
)

// mustResolveConfig turns the command-line flags into explicit
// overrides and resolves the full configuration.
func mustResolveConfig() *config.Config {
	overrides := make(map[string]string)
	if flags.courseID != 0 {
		overrides["course_id"] = strconv.FormatInt(flags.courseID, 10)
	}
	if flags.configFile != "" {
		overrides["config_file"] = flags.configFile
	}
	cfg, err := config.Resolve(overrides)
	if err != nil {
		log.Fatalf("error resolving configuration: %v", err)
	}
	return cfg
}

func mustOpenCourse(cfg *config.Config) *canvas.Course {
	course, err := canvas.NewCourse(cfg)
	if err != nil {
		log.Fatalf("error opening course %d: %v", cfg.CourseID, err)
	}
	return course
}

func mustParseID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		log.Fatalf("%q is not a numeric ID", s)
	}
	return id
}
