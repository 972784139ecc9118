// Package prompts provides the fixed prompt templates sent to LLM vendors.
// Templates are stored as JSON files and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

var (
	cache   = make(map[string]map[string]string)
	cacheMu sync.RWMutex
)

// Get retrieves a prompt by filename and key. The filename should not
// include a path (e.g., "analysis.json").
func Get(filename, key string) (string, error) {
	loaded, err := loadFile(filename)
	if err != nil {
		return "", err
	}

	prompt, exists := loaded[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet retrieves a prompt by filename and key, panicking if not found.
// Use this for prompts that are required at initialization time.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces template placeholders in the form {{.Key}} with values
// from data. Values are interpolated verbatim, with no escaping.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		placeholder := fmt.Sprintf("{{.%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

// loadFile loads and caches a prompt file.
func loadFile(filename string) (map[string]string, error) {
	cacheMu.RLock()
	if loaded, exists := cache[filename]; exists {
		cacheMu.RUnlock()
		return loaded, nil
	}
	cacheMu.RUnlock()

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	var loaded map[string]string
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	cacheMu.Lock()
	cache[filename] = loaded
	cacheMu.Unlock()

	return loaded, nil
}

// SystemPersona returns the fixed ATS analyst persona for resume analysis.
func SystemPersona() string {
	return MustGet("analysis.json", "system_persona")
}

// ResumeAnalysis renders the resume analysis prompt with the resume text and
// target role interpolated verbatim.
func ResumeAnalysis(resumeText, targetRole string) string {
	return Format(MustGet("analysis.json", "resume_analysis"), map[string]string{
		"ResumeText": resumeText,
		"TargetRole": targetRole,
	})
}

// RoadmapSystem returns the fixed learning-path designer persona.
func RoadmapSystem() string {
	return MustGet("roadmap.json", "system")
}

// Roadmap renders the 8-week roadmap generation prompt.
func Roadmap(missingSkills []string, targetRole string) string {
	return Format(MustGet("roadmap.json", "generate"), map[string]string{
		"Skills":     strings.Join(missingSkills, ", "),
		"TargetRole": targetRole,
	})
}

// SkillGap renders the standalone skill gap analysis prompt.
func SkillGap(currentSkills []string, targetRole string) string {
	skills := "None identified"
	if len(currentSkills) > 0 {
		skills = strings.Join(currentSkills, ", ")
	}
	return Format(MustGet("analysis.json", "skill_gap"), map[string]string{
		"CurrentSkills": skills,
		"TargetRole":    targetRole,
	})
}
