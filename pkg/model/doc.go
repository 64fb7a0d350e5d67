// Package model describes the base objects manipulated by odtools.
//
// The package exposes a model for experiment metadata.
//
// The object model for odtools is composed of:
//
//  Root:
//    The top entry of a store. It carries the experiment description and the
//    attribute defaults inherited by every subject.
//
//  Subjects:
//    A subject identifies one experimental subject. Subjects live directly
//    under the root and are marked with the subject metadata key.
//
//  Dates:
//    An acquisition date under a subject. Dates are opaque names, with
//    YYYY-MM-DD as the conventional form.
//
//  Sessions:
//    A numbered recording session under a date. Session entries are named
//    after their number.
//
//  Domains:
//    A group of related data under a session, such as one imaging modality
//    or one processing stage. Numbered domains are called runs.
//
//  Datasets:
//    Named payloads attached to a session or domain entry, qualified by
//    definition, unit, fingerprint and size attributes.
//
// Entries carry an ordered attribute dictionary. Attribute keys are
// slash-delimited paths into that dictionary, such as metadata/subject or
// cell/depth/value.
package model
