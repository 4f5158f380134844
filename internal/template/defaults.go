package template

// defaultTemplates are the built-in templates Init seeds into an empty
// template directory. Keys are template names without the .md suffix.
var defaultTemplates = map[string]string{
	"daily-journal": `# Daily Journal - {{date}}

## Morning Intention
- [ ] Primary focus:
- [ ] Energy level (1-10):
- [ ] Gratitude:

## Time Blocks
### 9:00-12:00 (Deep Work)
-

### 12:00-13:00 (Lunch/Break)
-

### 13:00-17:00 (Meetings/Collaboration)
-

### 17:00-18:00 (Wrap-up)
-

## Accomplished Today
-

## Challenges Faced
-

## Learning & Insights
-

## Tomorrow's Priority
-

## Evening Reflection
- What went well?
- What could improve?
- Energy level (1-10):

---
Tags: #journal #daily #{{month}} #{{year}}`,

	"meeting-notes": `# Meeting: {{title}}

**Date:** {{date}}
**Time:** {{time}}
**Attendees:** {{attendees}}
**Meeting Type:** {{type}}

## Agenda
1. {{agenda_item_1}}
2. {{agenda_item_2}}
3. {{agenda_item_3}}

## Discussion Notes

### Topic 1: {{topic}}
**Discussion:**
-

**Decision:**
-

## Action Items
| Action | Owner | Deadline | Status |
|--------|-------|----------|--------|
| | | | [ ] |

## Key Decisions
1.

## Next Steps
-

---
Tags: #meeting #{{project}} #{{team}}`,

	"bug-report": `# Bug Report: {{title}}

**Reported By:** {{reporter}}
**Date:** {{date}}
**Severity:** {{severity}}
**Priority:** {{priority}}

## Summary
Brief description of the issue

## Environment
- **OS:** {{os}}
- **Browser/App:** {{browser}}
- **Version:** {{version}}

## Steps to Reproduce
1.
2.
3.

## Expected Behavior
What should happen:

## Actual Behavior
What actually happens:

## Screenshots/Logs
` + "```" + `
[Paste error logs here]
` + "```" + `

---
Tags: #bug #{{component}} #{{severity}}`,

	"project-readme": `# {{project_name}}

[![License](https://img.shields.io/badge/license-{{license}}-blue.svg)](LICENSE)
[![Version](https://img.shields.io/badge/version-{{version}}-green.svg)](CHANGELOG.md)

## Overview
{{brief_description}}

## Features
- {{feature_1}}
- {{feature_2}}
- {{feature_3}}

## Quick Start

### Installation
` + "```bash" + `
{{installation_command}}
` + "```" + `

### Basic Usage
` + "```bash" + `
{{usage_example}}
` + "```" + `

## Documentation
- [User Guide](docs/USER_GUIDE.md)
- [API Reference](docs/API.md)

## Contributing
See [CONTRIBUTING.md](CONTRIBUTING.md)

## License
{{license}} - see [LICENSE](LICENSE)

---
Tags: #project #{{language}} #{{category}}`,

	"weekly-review": `# Weekly Review - Week {{week_number}}, {{year}}

## Week Overview
**Dates:** {{start_date}} - {{end_date}}

## Accomplishments
### Professional
-

### Personal
-

## Challenges & Lessons
-

## Next Week's Priorities
1.
2.
3.

## Metrics
- Tasks completed: X/Y
- Focus time: X hours
- Meeting time: X hours

## Reflection
-

---
Tags: #weekly-review #{{month}} #{{year}}`,
}
