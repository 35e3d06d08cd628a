// Package toolchain turns a built dependency tree into HDL compile and
// elaboration commands and runs them through the shell. The consumer-side
// include aggregation lives here: the tree itself never collects includes.
package toolchain
