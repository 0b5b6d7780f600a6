// Package output provides output formatting for netpanel-cli.
//
// Three formats are supported: an ASCII table for humans, plus JSON and YAML
// for scripting. Table rendering works on generic decoded payloads since the
// console's resource schemas are server-defined; anything untabular falls
// back to indented JSON.
package output
