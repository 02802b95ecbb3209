package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"text/template"
)

// {{var "name" default required}}
var varTagPattern = regexp.MustCompile(`\{\{var\s+"([^"]+)"\s+("[^"]*"|[^\s}]+)\s+(true|false)\s*\}\}`)

// generateConfigWithVars генерує конфігурацію з шаблону з використанням змінних
func generateConfigWithVars(templatePath, outputPath string, vars map[string]interface{}) error {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	rendered, err := RenderTemplate(string(content), vars)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Файл містить client secret
	if err := os.WriteFile(outputPath, rendered, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// RenderTemplate підставляє змінні у {{var}} теги і виконує text/template
func RenderTemplate(content string, vars map[string]interface{}) ([]byte, error) {
	processed, missing := processVarTags(content, vars)
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("required template variables not set: %s", strings.Join(missing, ", "))
	}

	tmpl, err := template.New("config").Option("missingkey=error").Parse(processed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.Bytes(), nil
}

// processVarTags обробляє {{var}} теги і повертає список відсутніх обов'язкових змінних
func processVarTags(content string, vars map[string]interface{}) (string, []string) {
	var missing []string

	processed := varTagPattern.ReplaceAllStringFunc(content, func(match string) string {
		matches := varTagPattern.FindStringSubmatch(match)
		if len(matches) != 4 {
			return match
		}

		varName := matches[1]
		defaultValue := matches[2]
		required := matches[3] == "true"

		if value, exists := vars[varName]; exists && value != "" {
			return formatValue(value)
		}

		if required && (defaultValue == "" || defaultValue == `""`) {
			missing = append(missing, varName)
			return match
		}

		return formatValue(parseDefaultValue(defaultValue))
	})

	return processed, missing
}

// formatValue форматує значення для HCL
func formatValue(value interface{}) string {
	switch v := value.(type) {
	case []string:
		quoted := make([]string, 0, len(v))
		for _, item := range v {
			quoted = append(quoted, strconv.Quote(strings.TrimSpace(item)))
		}
		return strings.Join(quoted, ", ")
	case string:
		if strings.Contains(v, ",") {
			return formatValue(strings.Split(v, ","))
		}
		return strconv.Quote(v)
	case int, int32, int64:
		return fmt.Sprintf("%d", v)
	case float32, float64:
		return strconv.FormatFloat(toFloat(v), 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return strconv.Quote(fmt.Sprint(v))
	}
}

func toFloat(v interface{}) float64 {
	if f, ok := v.(float32); ok {
		return float64(f)
	}
	return v.(float64)
}

// parseDefaultValue парсить дефолтне значення з шаблону
func parseDefaultValue(defaultValue string) interface{} {
	if strings.HasPrefix(defaultValue, `"`) && strings.HasSuffix(defaultValue, `"`) {
		return strings.Trim(defaultValue, `"`)
	}

	if intVal, err := strconv.Atoi(defaultValue); err == nil {
		return intVal
	}

	if boolVal, err := strconv.ParseBool(defaultValue); err == nil {
		return boolVal
	}

	return defaultValue
}
