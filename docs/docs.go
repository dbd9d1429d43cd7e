// Package docs holds the endpoint metadata model read from YAML files.
//
// A metadata file plays the part of the symbol index an IDE keeps for a
// Spring project: which handler method serves which URL, what its
// parameters are annotated with, and which fields a type declares.
package docs

type Document struct {
	ContextPath string `yaml:"contextPath,omitempty"`
	Types       Types  `yaml:"types,omitempty"`
	Paths       Paths  `yaml:"paths,omitempty"`
}
