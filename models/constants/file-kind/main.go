package fileKind

import (
	"genolens/api/models/constants"
	"path/filepath"
	"strings"
)

const (
	VCF              constants.FileKind = "VCF"
	BAM              constants.FileKind = "BAM"
	FASTQ            constants.FileKind = "FASTQ"
	TwentyThreeAndMe constants.FileKind = "23andMe"
	AncestryDNA      constants.FileKind = "AncestryDNA"
	Other            constants.FileKind = "Other"
)

// extensions offered by the upload picker
var AcceptedExtensions = []string{".vcf", ".bam", ".fastq", ".txt", ".csv", ".zip"}

/*
DetectFileKind maps a file name onto a genomic file kind.
First match wins: extension (vcf, bam, fastq), then the
case-sensitive "23andMe" and "ancestry" substrings.
*/
func DetectFileKind(fileName string) constants.FileKind {
	switch extensionOf(fileName) {
	case "vcf":
		return VCF
	case "bam":
		return BAM
	case "fastq":
		return FASTQ
	}

	if strings.Contains(fileName, "23andMe") {
		return TwentyThreeAndMe
	}
	if strings.Contains(fileName, "ancestry") {
		return AncestryDNA
	}

	return Other
}

func IsAcceptedFileName(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, accepted := range AcceptedExtensions {
		if ext == accepted {
			return true
		}
	}
	return false
}

func IsRecognized(kind constants.FileKind) bool {
	return kind != Other && kind != ""
}

// - helpers
func extensionOf(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx == -1 {
		// no dot: the whole name is treated as the extension
		return strings.ToLower(fileName)
	}
	return strings.ToLower(fileName[idx+1:])
}
