package browser

import (
	"fmt"
	"strings"
)

// maxElements keeps the outline small enough for the prompt budget.
const maxElements = 40

type Element struct {
	Kind     string
	Label    string
	Selector string
}

// outlineScript collects visible headings and interactive elements.
const outlineScript = `() => {
	function cleanText(text) {
		if (!text) return '';
		let res = text.replace(/\s+/g, ' ').trim();
		if (res.length > 80) return res.slice(0, 80) + '...';
		return res;
	}

	function isVisible(el) {
		if (!el || !el.getBoundingClientRect) return false;
		if (el.getAttribute('aria-hidden') === 'true') return false;
		const rect = el.getBoundingClientRect();
		const style = window.getComputedStyle(el);
		return rect.width > 0 && rect.height > 0 &&
			style.visibility !== 'hidden' &&
			style.display !== 'none' &&
			style.opacity !== '0';
	}

	function kindOf(el) {
		const tag = el.tagName.toLowerCase();
		const role = (el.getAttribute('role') || '').toLowerCase();
		const type = (el.getAttribute('type') || '').toLowerCase();
		if (/^h[1-3]$/.test(tag)) return 'heading';
		if (tag === 'button' || role === 'button') return 'button';
		if (tag === 'a' || role === 'link') return 'link';
		if (tag === 'textarea' || role === 'textbox') return 'textbox';
		if (tag === 'input') {
			if (type === 'checkbox') return 'checkbox';
			if (type === 'radio') return 'radio';
			return 'input';
		}
		return tag;
	}

	function selectorOf(el) {
		if (el.id) return '#' + el.id;
		const testId = el.getAttribute('data-testid');
		if (testId) return '[data-testid="' + testId + '"]';
		const name = el.getAttribute('name');
		if (name) return el.tagName.toLowerCase() + '[name="' + name + '"]';
		return '';
	}

	const query = 'h1, h2, h3, a, button, input, textarea, select, [role="button"], [role="link"], [role="textbox"]';
	const out = [];
	for (const el of document.querySelectorAll(query)) {
		if (!isVisible(el)) continue;
		let label = cleanText(el.innerText || el.textContent || '');
		if (!label) label = cleanText(el.getAttribute('aria-label') || '');
		if (!label) label = cleanText(el.getAttribute('placeholder') || '');
		if (!label) label = cleanText(el.getAttribute('title') || '');
		out.push({ kind: kindOf(el), label: label, selector: selectorOf(el) });
	}
	return out;
}`

func parseElements(result any) ([]Element, error) {
	if result == nil {
		return nil, nil
	}
	items, ok := result.([]any)
	if !ok {
		return nil, fmt.Errorf("expected array from js, got %T", result)
	}

	elements := make([]Element, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		el := Element{
			Kind:     stringField(m, "kind"),
			Label:    stringField(m, "label"),
			Selector: stringField(m, "selector"),
		}
		if el.Label == "" && el.Selector == "" {
			continue
		}
		elements = append(elements, el)
	}
	return elements, nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

// FormatOutline renders the page description appended to prompts.
func FormatOutline(url, title string, elements []Element) string {
	var sb strings.Builder
	if url != "" {
		sb.WriteString("URL: " + url + "\n")
	}
	if title != "" {
		sb.WriteString("TITLE: " + title + "\n")
	}

	for n, el := range elements {
		if n == maxElements {
			fmt.Fprintf(&sb, "...[%d more elements]\n", len(elements)-maxElements)
			break
		}
		sb.WriteString("[" + el.Kind + "]")
		if el.Label != "" {
			fmt.Fprintf(&sb, " %q", el.Label)
		}
		if el.Selector != "" {
			sb.WriteString(" " + el.Selector)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
