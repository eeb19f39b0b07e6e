package mcpserver

// PostFormatContract describes the post file format the index accepts.
const PostFormatContract = `# Post Format Contract

Every post is a single Markdown file directly inside the content directory.

## Structure

` + "```" + `markdown
---
title: Human-readable title   # REQUIRED
date: 2024-03-01              # OPTIONAL, posts without a date sort last
tags:                         # OPTIONAL, YAML list or a single string
  - go
  - web
description: One-line summary # OPTIONAL
---

Body text in standard Markdown.
` + "```" + `

## Rules

1. **Front-matter comes first.** The ` + "`---`" + ` fences open the file. YAML (` + "`---`" + `),
   TOML (` + "`+++`" + `) and JSON (` + "`;;;`" + `) delimiters are accepted.
2. **` + "`title`" + ` is required** and must be a non-empty string.
3. **` + "`date`" + `** accepts ` + "`2006-01-02`" + `, ` + "`2006-01-02 15:04:05`" + `,
   ` + "`2006-01-02T15:04:05`" + `, RFC 3339 and ` + "`January 2, 2006`" + `. Anything else is a parse error.
4. **` + "`tags`" + `** entries must be scalars; numbers and booleans are read as their
   text (` + "`2023`" + ` becomes ` + "`\"2023\"`" + `). Lists and maps are a parse error. Matching is
   exact and case-sensitive. ` + "`title`" + ` follows the same scalar rule.
5. **Slug** is the file name without ` + "`.md`" + `. Use lowercase kebab-case
   (` + "`hello-world.md`" + `); run ` + "`blogindex check`" + ` to find slugs that are not.
6. **Flat layout.** Files in sub-directories, hidden files and non-` + "`.md`" + ` files are ignored.
7. **One bad file fails the listing.** Fix parse errors before publishing.
`
