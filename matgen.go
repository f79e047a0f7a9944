package main

import "matgen/cmd"

// Generates M_<rowsM>_<inner> and N_<inner>_<colsN> in the current folder,
// test input for a matrix multiplication job.
// usage: matgen <rowsM> <inner> <colsN>
func main() {
	cmd.Execute()
}
