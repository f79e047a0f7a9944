package util

import (
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	"github.com/google/pprof/profile"
)

// StartCPUProfile starts recording a CPU profile into path.
// The returned function stops the profile and closes the file.
func StartCPUProfile(path string) (func() error, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating cpu profile %s: %w", path, err)
	}
	if err := pprof.StartCPUProfile(file); err != nil {
		file.Close()
		return nil, fmt.Errorf("starting cpu profile: %w", err)
	}
	return func() error {
		pprof.StopCPUProfile()
		return file.Close()
	}, nil
}

// FuncTime is the flat sample value attributed to one function.
type FuncTime struct {
	Func string
	Time int64
}

type FuncTimeArray []FuncTime

func (l FuncTimeArray) Len() int {
	return len(l)
}

func (l FuncTimeArray) Less(i, j int) bool {
	// greatest first
	return l[i].Time > l[j].Time
}

func (l FuncTimeArray) Swap(i, j int) {
	l[i], l[j] = l[j], l[i]
}

// GetFuncsByTime sums the last sample value of every sample per leaf function.
// For CPU profiles that is the time in nanoseconds.
func GetFuncsByTime(prof *profile.Profile) FuncTimeArray {
	totals := make(map[string]int64)
	for _, sample := range prof.Sample {
		if len(sample.Location) == 0 || len(sample.Value) == 0 {
			continue
		}
		loc := sample.Location[0]
		if len(loc.Line) == 0 || loc.Line[0].Function == nil {
			continue
		}
		totals[loc.Line[0].Function.Name] += sample.Value[len(sample.Value)-1]
	}
	funcs := make(FuncTimeArray, 0, len(totals))
	for name, t := range totals {
		funcs = append(funcs, FuncTime{Func: name, Time: t})
	}
	sort.Sort(funcs)
	return funcs
}

// SummarizeProfile parses the profile at path and writes its duration and the top functions to out.
func SummarizeProfile(path string, top int, out io.Writer) error {
	rawProfile, err := os.Open(path)
	if err != nil {
		return err
	}
	defer rawProfile.Close()
	prof, err := profile.Parse(rawProfile)
	if err != nil {
		return fmt.Errorf("parsing cpu profile %s: %w", path, err)
	}
	fmt.Fprintf(out, "Profile duration: %v\n", time.Duration(prof.DurationNanos))
	for i, ft := range GetFuncsByTime(prof) {
		if i >= top {
			break
		}
		fmt.Fprintf(out, "%v - %s took %v\n", i+1, ft.Func, time.Duration(ft.Time))
	}
	return nil
}
