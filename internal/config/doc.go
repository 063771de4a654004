// Package config defines the extraction options and loads them from a
// configuration file and the environment.
//
// Sources are layered, later ones winning:
//
//	Defaults()  ->  .hcl / .yaml file  ->  CK3GRAPH_* environment  ->  CLI flags
//
// The last layer is applied by the cli package; Validate runs once every
// layer is in.
package config
