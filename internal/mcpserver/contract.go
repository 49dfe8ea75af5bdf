package mcpserver

// RecordFormatContract describes the canonical flat-text record format that
// LLM consumers should follow when creating nodes.
const RecordFormatContract = `# Worldbuilder Record Format Contract

Every node stored in Worldbuilder is a plain-text file named <key>.txt with
this line-oriented structure.

## Structure

` + "```" + `text
<type>      # line 1 – category label, e.g. Kingdom, City, Character
<parent>    # line 2 – key of the parent node, or "-" for a root node
<notes>     # lines 3+ – free-form notes, may span multiple lines
` + "```" + `

## Rules

1. **Keys are slugs.** A node name is lowercased and every run of
   characters outside [a-z0-9] collapses to a single underscore, with
   leading and trailing underscores trimmed. "Minas Tirith" becomes
   ` + "`" + `minas_tirith` + "`" + `.
2. **Line 1 is the type.** Any short label is allowed; an empty file
   defaults to ` + "`" + `Node` + "`" + `.
3. **Line 2 is the parent key.** Use ` + "`" + `-` + "`" + ` (or leave it empty) for a
   root node. The parent should be an existing key; a reference to a
   missing key still renders, marked as a dangling entry in the tree.
4. **Lines 3 and beyond are notes.** Standard UTF-8 text, no markup
   required.
5. **No binary content.** Records are plain text only.

## Example

` + "```" + `text
City
gondor
The white city, capital of Gondor.
Seven concentric walls.
` + "```" + `
`
