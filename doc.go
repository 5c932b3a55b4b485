// Package wiktscan turns a wiktionary xml dump into one JSON record
// per English word sense.
//
// The dumps are available from the wikimedia group here:
//    http://dumps.wikimedia.org/enwiktionary/
//
// Pages are cut out of the raw byte stream without a full xml parse,
// filtered, and the ==English== section of each survivor is mined for
// parts of speech, sense labels, syllable counts, lemmas and
// etymological morphology.  Output order always matches input order,
// whichever Strategy does the work.
//
// See the programs under tools/ for the scanner itself and for
// loaders that push its output into various stores.
package wiktscan
