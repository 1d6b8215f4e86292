package doctor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/afero"

	"github.com/conn-castle/nifeed/internal/config"
	"github.com/conn-castle/nifeed/internal/locate"
	"github.com/conn-castle/nifeed/internal/messages"
	"github.com/conn-castle/nifeed/internal/publish"
)

var (
	loadOptionalFunc = config.LoadOptional
	readFileFunc     = os.ReadFile
	lookPathFunc     = exec.LookPath
)

// CheckConfig loads the config the same way the build commands do.
// When strict loading fails validation but the TOML parses, the leniently
// loaded config is returned so the remaining checks still run.
func CheckConfig(path string) ([]Result, *config.Config) {
	cfg, source, err := loadOptionalFunc(path)
	if err == nil {
		msg := messages.DoctorConfigDefaults
		if source != "" {
			msg = fmt.Sprintf(messages.DoctorConfigLoadedFmt, source)
		}
		return []Result{{Status: StatusOK, CheckName: messages.DoctorCheckNameConfig, Message: msg}}, cfg
	}

	failure := Result{
		Status:         StatusFail,
		CheckName:      messages.DoctorCheckNameConfig,
		Message:        fmt.Sprintf(messages.DoctorConfigLoadFailedFmt, err),
		Recommendation: messages.DoctorConfigLoadRecommend,
	}
	if !errors.Is(err, config.ErrConfigValidation) {
		return []Result{failure}, nil
	}

	file := path
	if file == "" {
		file = config.DefaultFile
	}
	data, readErr := readFileFunc(file)
	if readErr != nil {
		return []Result{failure}, nil
	}
	lenient, lenientErr := config.ParseConfigLenient(data, file)
	if lenientErr != nil {
		return []Result{failure}, nil
	}
	if details, keysErr := unknownConfigKeys(data); keysErr == nil && len(details) > 0 {
		failure.Message = fmt.Sprintf(messages.DoctorConfigLoadFailedFmt, summarizeUnknownKeys(details))
		failure.Recommendation = formatUnknownKeyRecommendation(file, details)
	}
	return []Result{failure}, lenient
}

// CheckNipkg verifies that the configured nipkg executable can be found.
func CheckNipkg(cfg *config.Config) []Result {
	resolved, err := lookPathFunc(cfg.Nipkg.Path)
	if err != nil {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameNipkg,
			Message:        fmt.Sprintf(messages.DoctorNipkgMissingFmt, cfg.Nipkg.Path),
			Recommendation: messages.DoctorNipkgMissingRecommend,
		}}
	}
	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameNipkg,
		Message:   fmt.Sprintf(messages.DoctorNipkgFoundFmt, resolved),
	}}
}

// CheckPublish verifies the interpreter and build report script used for publishing.
// A disabled publisher is reported and nothing else is checked.
func CheckPublish(fsys afero.Fs, cfg *config.Config) []Result {
	if !cfg.Publish.Enabled {
		return []Result{{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNamePython,
			Message:   messages.DoctorPublishDisabled,
		}}
	}

	var results []Result
	if resolved, err := lookPathFunc(cfg.Publish.Python); err != nil {
		results = append(results, Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNamePython,
			Message:        fmt.Sprintf(messages.DoctorPythonMissingFmt, cfg.Publish.Python),
			Recommendation: messages.DoctorPythonMissingRecommend,
		})
	} else {
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNamePython,
			Message:   fmt.Sprintf(messages.DoctorPythonFoundFmt, resolved),
		})
	}

	pub := publish.Publisher{FS: fsys, ReportRoot: cfg.Publish.ReportRoot}
	script, err := pub.Script()
	if err != nil {
		results = append(results, Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameBuildReport,
			Message:        fmt.Sprintf(messages.DoctorBuildReportMissingFmt, cfg.Publish.ReportRoot, err),
			Recommendation: messages.DoctorBuildReportRecommend,
		})
		return results
	}
	return append(results, Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameBuildReport,
		Message:   fmt.Sprintf(messages.DoctorBuildReportFoundFmt, script),
	})
}

// CheckExclusions reports which components each feed type leaves out.
func CheckExclusions(ex locate.Exclusions) []Result {
	results := make([]Result, 0, len(locate.FeedTypes()))
	for _, ft := range locate.FeedTypes() {
		names := ex.Active(ft).Sorted()
		list := messages.DoctorExclusionsNone
		if len(names) > 0 {
			list = strings.Join(names, ", ")
		}
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameExclusions,
			Message:   fmt.Sprintf(messages.DoctorExclusionsFmt, ft, len(names), list),
		})
	}
	return results
}
