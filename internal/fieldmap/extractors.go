package fieldmap

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Extractor reconhece um formato de payload. fields vem com chaves normalizadas;
// envelope é o objeto onde a plataforma coloca ad_id, campaign_id etc.
type Extractor interface {
	Name() string
	Extract(payload map[string]any) (fields map[string]string, envelope map[string]any, ok bool)
}

// metaExtractor: entry[].changes[].value.field_data[] = {name, values[]}
type metaExtractor struct{}

func (metaExtractor) Name() string { return "meta" }

func (metaExtractor) Extract(payload map[string]any) (map[string]string, map[string]any, bool) {
	// lead já buscado na Graph API vem só com field_data
	if fd, ok := payload["field_data"].([]any); ok {
		return fieldList(fd, "name", "values"), payload, true
	}

	entries, ok := payload["entry"].([]any)
	if !ok {
		return nil, nil, false
	}
	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			continue
		}
		changes, _ := entry["changes"].([]any)
		for _, c := range changes {
			change, ok := c.(map[string]any)
			if !ok {
				continue
			}
			value, ok := change["value"].(map[string]any)
			if !ok {
				continue
			}
			fd, _ := value["field_data"].([]any)
			if fields := fieldList(fd, "name", "values"); len(fields) > 0 {
				return fields, value, true
			}
		}
	}
	return nil, nil, true
}

// tiktokExtractor: data.form_fields[] (ou form_fields[] na raiz) = {key, value}
type tiktokExtractor struct{}

func (tiktokExtractor) Name() string { return "tiktok" }

func (tiktokExtractor) Extract(payload map[string]any) (map[string]string, map[string]any, bool) {
	if data, ok := payload["data"].(map[string]any); ok {
		if ff, ok := data["form_fields"].([]any); ok {
			return fieldList(ff, "key", "value"), data, true
		}
	}
	if ff, ok := payload["form_fields"].([]any); ok {
		return fieldList(ff, "key", "value"), payload, true
	}
	return nil, nil, false
}

// flatExtractor: o próprio payload é o container (provedor de email, formulários web).
type flatExtractor struct{}

func (flatExtractor) Name() string { return "flat" }

func (flatExtractor) Extract(payload map[string]any) (map[string]string, map[string]any, bool) {
	return flatten(payload), payload, true
}

// fieldList lê listas de {nameKey, valueKey}. Aceita também "name"/"field_name"
// e "value"/"values" para cobrir variações entre versões das APIs.
func fieldList(items []any, nameKey, valueKey string) map[string]string {
	fields := map[string]string{}
	for _, it := range items {
		item, ok := it.(map[string]any)
		if !ok {
			continue
		}
		name := firstString(item, nameKey, "name", "key", "field_name")
		if name == "" {
			continue
		}
		raw, ok := item[valueKey]
		if !ok {
			if raw, ok = item["value"]; !ok {
				raw = item["values"]
			}
		}
		if v := stringify(raw); v != "" {
			fields[normalizeKey(name)] = v
		}
	}
	return fields
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// flatten só olha o primeiro nível e ignora objetos aninhados.
func flatten(m map[string]any) map[string]string {
	out := map[string]string{}
	for k, v := range m {
		switch v.(type) {
		case map[string]any:
			continue
		}
		if s := stringify(v); s != "" {
			out[normalizeKey(k)] = s
		}
	}
	return out
}

func normalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	k = strings.ReplaceAll(k, "-", "_")
	k = strings.ReplaceAll(k, " ", "_")
	return k
}

// stringify converte escalares; de listas pega o primeiro valor não vazio.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case []any:
		for _, item := range t {
			if s := stringify(item); s != "" {
				return s
			}
		}
		return ""
	case []string:
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
		return ""
	default:
		return ""
	}
}
