/*
Package odtools provides tooling to organize experiment data in the
open-data format.

The format lays a small set of conventions over a hierarchical attributed
store: subjects at the top, acquisition dates below them, numbered sessions
below dates, and domains or runs below sessions. Datasets and attributes
attach at any level, and every attribute carries a definition, so the data
remains understandable without the code that produced it.

The main packages are:

  - pkg/model: the data model, ordered attribute dictionaries and the
    hierarchy ontology
  - pkg/store: the store contract with localfs and badger backends
  - pkg/core: the convention operations (add subjects, dates, sessions,
    domains, datasets, attributes; copy and export)
  - cmd/odtools: the command line interface
*/
package odtools
