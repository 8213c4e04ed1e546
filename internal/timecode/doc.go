// Package timecode parses and formats the human timecodes used by the trim
// and subtitle stages: "ss", "mm:ss", "hh:mm:ss", and the SRT timestamp form
// "hh:mm:ss,mmm".
package timecode
