// Package model defines the descriptors the rest of the module consumes: an
// Action is a named, ordered list of Field descriptors, and each Field names
// one value the operator must supply before a job-trigger URL can be built.
// Field.Name doubles as the control identifier and the query-parameter name,
// so it must be unique inside its Action. Select fields carry the closed set
// of choices in Options; text and email fields never do.
package model
