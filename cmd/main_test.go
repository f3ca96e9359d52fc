package main

import (
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestMain(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Main Suite")
}

var _ = Describe("parseFlags", func() {
	It("should parse long and short language flags", func() {
		flags, _ := parseFlags([]string{"-s", "en", "-t", "es", "hola"})
		Expect(flags.source).To(Equal("en"))
		Expect(flags.target).To(Equal("es"))
	})

	It("should parse the explicit API URL", func() {
		flags, _ := parseFlags([]string{"-api-url", "http://custom:9000", "hola"})
		Expect(flags.apiURL).To(Equal("http://custom:9000"))
	})

	It("should leave positional text in the flag set args", func() {
		_, fs := parseFlags([]string{"-t", "en", "hola", "mundo"})
		Expect(fs.Args()).To(Equal([]string{"hola", "mundo"}))
	})

	It("should default the check flag to off", func() {
		flags, _ := parseFlags([]string{"hola"})
		Expect(flags.check).To(BeFalse())
	})
})

var _ = Describe("buildOverrides", func() {
	It("should record only flags that were explicitly set", func() {
		flags, fs := parseFlags([]string{"-local-url", "http://lt.flag:5000", "hola"})

		o := buildOverrides(fs, flags)
		Expect(o.LocalURL).NotTo(BeNil())
		Expect(*o.LocalURL).To(Equal("http://lt.flag:5000"))
		Expect(o.LocalShortThreshold).To(BeNil())
		Expect(o.DisableLocalShort).To(BeNil())
	})

	It("should record a disabled local preference", func() {
		flags, fs := parseFlags([]string{"-no-local-short", "hola"})

		o := buildOverrides(fs, flags)
		Expect(o.DisableLocalShort).NotTo(BeNil())
		Expect(*o.DisableLocalShort).To(BeTrue())
	})

	It("should record an explicit threshold", func() {
		flags, fs := parseFlags([]string{"-short-threshold", "50", "hola"})

		o := buildOverrides(fs, flags)
		Expect(o.LocalShortThreshold).NotTo(BeNil())
		Expect(*o.LocalShortThreshold).To(Equal(50))
	})

	It("should return empty overrides when no flags were set", func() {
		flags, fs := parseFlags([]string{"hola"})

		o := buildOverrides(fs, flags)
		Expect(o.LocalURL).To(BeNil())
		Expect(o.RemoteURL).To(BeNil())
		Expect(o.LocalShortThreshold).To(BeNil())
		Expect(o.DisableLocalShort).To(BeNil())
	})
})

var _ = Describe("readInput", func() {
	It("should prefer positional arguments over stdin", func() {
		text, err := readInput([]string{"hola", "mundo"}, strings.NewReader("ignored"))
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("hola mundo"))
	})

	It("should read all of stdin when no argument is given", func() {
		text, err := readInput(nil, strings.NewReader("line one\nline two\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("line one\nline two\n"))
	})
})

var _ = Describe("resolveLanguages", func() {
	It("should keep explicit source and target", func() {
		source, target := resolveLanguages("en", "es", "hello")
		Expect(source).To(Equal("en"))
		Expect(target).To(Equal("es"))
	})

	It("should default the target to the opposite of an explicit source", func() {
		source, target := resolveLanguages("es", "", "hola mundo")
		Expect(source).To(Equal("es"))
		Expect(target).To(Equal("en"))
	})

	It("should leave the source empty for backend auto-detection", func() {
		source, target := resolveLanguages("", "en", "hola mundo")
		Expect(source).To(BeEmpty())
		Expect(target).To(Equal("en"))
	})

	It("should pick a target from locally detected language when nothing is given", func() {
		source, target := resolveLanguages("", "", "The quick brown fox jumps over the lazy dog today.")
		Expect(source).To(BeEmpty())
		Expect(target).To(Equal("es"))
	})
})
