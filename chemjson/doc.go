//Package chemjson writes and reads molecules as a stream of JSON lines, so
//molsvg molecules can be passed to programs written in other languages,
//for instance through UNIX pipes. The stream starts with one Info line,
//followed by two lines per atom (the atom, then its coordinates) and one
//line per bond.
package chemjson
