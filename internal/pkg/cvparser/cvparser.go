// Package cvparser pulls skills out of uploaded CVs.
package cvparser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

var knownSkills = []string{
	"python", "java", "javascript", "typescript", "react", "reactjs", "angular", "vue", "vuejs",
	"html", "css", "sass", "scss", "tailwind", "bootstrap", "node", "nodejs", "express",
	"django", "flask", "fastapi", "sql", "mysql", "postgresql", "postgres", "mongodb", "redis",
	"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "ci/cd", "git", "github", "gitlab",
	"linux", "bash", "shell", "agile", "scrum", "jira", "confluence",
	"communication", "leadership", "teamwork", "problem solving", "critical thinking",
	"design", "figma", "adobe xd", "photoshop", "illustrator",
	"machine learning", "deep learning", "data science", "pandas", "numpy", "scikit-learn",
	"pytorch", "tensorflow", "c++", "c#", ".net", "php", "laravel", "ruby", "rails",
	"go", "golang", "rust", "swift", "kotlin",
}

// Symbols break \b matching, so these are found by substring
var substringSkills = map[string]bool{"c++": true, "c#": true, ".net": true}

var upperSkills = map[string]bool{"html": true, "css": true, "sql": true, "aws": true, "api": true, "php": true}

var dotJSSkills = map[string]string{"reactjs": "React.js", "vuejs": "Vue.js", "nodejs": "Node.js"}

var skillPatterns = func() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(knownSkills))
	for _, s := range knownSkills {
		if substringSkills[s] {
			continue
		}
		patterns[s] = regexp.MustCompile(`\b` + regexp.QuoteMeta(s) + `\b`)
	}
	return patterns
}()

// ExtractSkills returns the known skills mentioned in text, formatted and sorted
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)

	found := make(map[string]bool)
	for _, s := range knownSkills {
		var hit bool
		if substringSkills[s] {
			hit = strings.Contains(lower, s)
		} else {
			hit = skillPatterns[s].MatchString(lower)
		}
		if hit {
			found[FormatSkill(s)] = true
		}
	}

	skills := make([]string, 0, len(found))
	for s := range found {
		skills = append(skills, s)
	}
	sort.Strings(skills)
	return skills
}

// FormatSkill renders a lower-case skill for display
func FormatSkill(s string) string {
	if upperSkills[s] {
		return strings.ToUpper(s)
	}
	if name, ok := dotJSSkills[s]; ok {
		return name
	}

	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ExtractText returns the plain text of a PDF
func ExtractText(r io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	return buf.String(), nil
}

// ExtractSkillsFromFile parses a stored CV. Only PDFs are read; other
// formats yield no skills.
func ExtractSkillsFromFile(path string) ([]string, error) {
	if strings.ToLower(filepath.Ext(path)) != ".pdf" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	text, err := ExtractText(f, info.Size())
	if err != nil {
		return nil, err
	}
	return ExtractSkills(text), nil
}

// MergeSkills appends extracted skills that are not already present, ignoring case
func MergeSkills(existing, extracted []string) []string {
	seen := make(map[string]bool, len(existing))
	merged := make([]string, 0, len(existing)+len(extracted))
	for _, s := range existing {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, s)
	}
	for _, s := range extracted {
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, s)
	}
	return merged
}
