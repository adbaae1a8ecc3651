// Package hclutil holds small helpers shared by the HCL-reading packages.
package hclutil
