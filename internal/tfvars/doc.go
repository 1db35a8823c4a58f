// Package tfvars parses `variable` declarations out of Terraform-style
// declaration files. It deliberately covers only the subset needed for
// documentation (name, type, description, default, sensitive) and keeps
// every attribute value as the verbatim source text, so the generator can
// reproduce user-authored defaults without re-serializing them.
package tfvars
