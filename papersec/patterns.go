// CLAUDE:SUMMARY Literal pattern tables mapping heading lines to canonical sections and exclusion categories (EN/ZH).
package papersec

import "regexp"

// patternCategory pairs a category name with its ordered pattern list.
// Categories are checked in table order; the first category with any
// matching pattern wins. The sets are mutually exclusive by construction,
// so order matters only for the handful of deliberately shared titles
// ("Summary" reads as Abstract, "Experiments" as Methods).
type patternCategory struct {
	name     string
	patterns []*regexp.Regexp
}

// headed returns the two standard forms of a section heading: bare and with
// a numeric prefix ("## Methods", "## 2. Methods"). Converter output uses
// both half-width and full-width dots in numbering.
func headed(body string) []string {
	return []string{
		`^#+\s*` + body + `\s*$`,
		`^#+\s*\d+[.．]?\s*` + body + `\s*$`,
	}
}

// romanHeaded covers roman-numeral numbering ("# IV. Conclusion").
func romanHeaded(body string) []string {
	return []string{`^#+\s*[ivx]+[.．]?\s*` + body + `\s*$`}
}

// bareHeaded is for titles that never carry numbering (Chinese headings,
// the spaced-out a b s t r a c t artifact).
func bareHeaded(body string) []string {
	return []string{`^#+\s*` + body + `\s*$`}
}

// numbered is the numeric-prefix form alone, for titles whose bare form
// belongs to another category ("Summary" reads as Abstract, "5. Summary"
// as Conclusion).
func numbered(body string) []string {
	return []string{`^#+\s*\d+[.．]?\s*` + body + `\s*$`}
}

func compile(groups ...[]string) []*regexp.Regexp {
	var out []*regexp.Regexp
	for _, g := range groups {
		for _, expr := range g {
			out = append(out, regexp.MustCompile(`(?i)`+expr))
		}
	}
	return out
}

// canonicalCategories is the dispatch table for canonical section matching.
// Results and Discussion are separate matching categories here; the
// extractor folds them into "Results & Discussion" afterwards.
var canonicalCategories = []patternCategory{
	{
		name: SectionAbstract,
		patterns: compile(
			bareHeaded(`abstract`),
			// Abstracts are sometimes unmarked in converter output; only
			// this category permits markerless matches.
			[]string{
				`^abstract\s*:`,
				`^abstract\s+\S+`,
			},
			bareHeaded(`摘要`),
			bareHeaded(`a\s*b\s*s\s*t\s*r\s*a\s*c\s*t`),
			bareHeaded(`summary`),
			bareHeaded(`executive\s+summary`),
		),
	},
	{
		name: SectionIntroduction,
		patterns: compile(
			headed(`introduction`),
			romanHeaded(`introduction`),
			headed(`background`),
			headed(`motivation`),
			headed(`overview`),
			headed(`background\s+and\s+motivation`),
			headed(`related\s+works?`),
			headed(`literature\s+review`),
			headed(`background\s+and\s+related\s+works?`),
			headed(`preliminaries`),
			headed(`problem\s+(statement|formulation|definition)`),
			headed(`state\s+of\s+the\s+art`),
			headed(`prior\s+works?`),
			headed(`previous\s+works?`),
			headed(`theoretical\s+background`),
			headed(`context`),
			headed(`scope`),
			headed(`objectives?`),
			headed(`aims?\s+and\s+objectives?`),
			bareHeaded(`引言`),
			bareHeaded(`绪论`),
			bareHeaded(`前言`),
			bareHeaded(`背景`),
			bareHeaded(`研究背景`),
			bareHeaded(`相关工作`),
			bareHeaded(`文献综述`),
			bareHeaded(`问题陈述`),
			bareHeaded(`问题定义`),
			bareHeaded(`研究现状`),
			bareHeaded(`理论基础`),
			bareHeaded(`预备知识`),
			bareHeaded(`研究目标`),
		),
	},
	{
		name: SectionMethods,
		patterns: compile(
			headed(`methods?`),
			romanHeaded(`methods?`),
			headed(`methodology`),
			headed(`materials?`),
			headed(`materials?\s+and\s+methods?`),
			headed(`experimental?`),
			headed(`experimental\s+(methods?|procedures?|section|setup|design)`),
			headed(`experiments?`),
			headed(`procedures?`),
			headed(`simulation`),
			headed(`simulation\s+(setup|model|framework|environment)`),
			headed(`numerical\s+(simulation|methods?|analysis)`),
			headed(`models?`),
			headed(`modeling`),
			headed(`modelling`),
			headed(`model\s+(description|formulation|development|construction)`),
			headed(`mathematical\s+(model|formulation|framework)`),
			headed(`theoretical\s+(model|framework|formulation)`),
			headed(`implementation`),
			headed(`system\s+(design|architecture|implementation|description)`),
			headed(`design`),
			headed(`architecture`),
			headed(`framework`),
			headed(`algorithms?`),
			headed(`approach`),
			headed(`proposed\s+(method|approach|algorithm|model|system|framework)`),
			headed(`our\s+(method|approach|algorithm|model|system|framework)`),
			headed(`the\s+proposed\s+(method|approach|algorithm|model|system)`),
			headed(`technical\s+(approach|details|description)`),
			headed(`data\s+(collection|acquisition|preparation|processing)`),
			headed(`dataset`),
			headed(`sample\s+(preparation|collection)`),
			headed(`classification`),
			headed(`formulation`),
			headed(`problem\s+formulation`),
			headed(`computational\s+(methods?|approach|framework)`),
			bareHeaded(`方法`),
			bareHeaded(`实验方法`),
			bareHeaded(`研究方法`),
			bareHeaded(`材料与方法`),
			bareHeaded(`实验设计`),
			bareHeaded(`仿真`),
			bareHeaded(`仿真设计`),
			bareHeaded(`数值仿真`),
			bareHeaded(`模型`),
			bareHeaded(`建模`),
			bareHeaded(`数学模型`),
			bareHeaded(`理论模型`),
			bareHeaded(`系统设计`),
			bareHeaded(`算法`),
			bareHeaded(`实现`),
			bareHeaded(`技术方案`),
			bareHeaded(`数据采集`),
			bareHeaded(`数据处理`),
			bareHeaded(`样本制备`),
			bareHeaded(`分类`),
			bareHeaded(`公式推导`),
			bareHeaded(`计算方法`),
		),
	},
	{
		// Combined forms first so "Results and Discussion" never splits.
		name: SectionResultsDiscussion,
		patterns: compile(
			headed(`results?\s+and\s+discussions?`),
			romanHeaded(`results?\s+and\s+discussions?`),
			bareHeaded(`结果与讨论`),
		),
	},
	{
		name: categoryResults,
		patterns: compile(
			headed(`results?`),
			romanHeaded(`results?`),
			headed(`experimental\s+results?`),
			headed(`simulation\s+results?`),
			headed(`numerical\s+results?`),
			headed(`findings?`),
			headed(`observations?`),
			headed(`evaluation`),
			headed(`performance\s+(evaluation|analysis|assessment)`),
			headed(`experimental\s+(evaluation|analysis)`),
			headed(`data\s+analysis`),
			headed(`statistical\s+analysis`),
			headed(`verification`),
			headed(`validation`),
			headed(`model\s+(verification|validation)`),
			headed(`experimental\s+validation`),
			headed(`case\s+stud(y|ies)`),
			headed(`applications?`),
			headed(`comparison`),
			headed(`comparative\s+(analysis|study|evaluation)`),
			headed(`performance`),
			headed(`benchmark`),
			headed(`benchmarking`),
			bareHeaded(`结果`),
			bareHeaded(`实验结果`),
			bareHeaded(`仿真结果`),
			bareHeaded(`数值结果`),
			bareHeaded(`性能分析`),
			bareHeaded(`数据分析`),
			bareHeaded(`统计分析`),
			bareHeaded(`评估`),
			bareHeaded(`验证`),
			bareHeaded(`模型验证`),
			bareHeaded(`实验验证`),
			bareHeaded(`案例研究`),
			bareHeaded(`应用`),
			bareHeaded(`比较`),
			bareHeaded(`对比分析`),
			bareHeaded(`性能评估`),
			bareHeaded(`基准测试`),
		),
	},
	{
		name: categoryDiscussion,
		patterns: compile(
			headed(`discussions?`),
			romanHeaded(`discussions?`),
			headed(`analysis`),
			headed(`interpretation`),
			bareHeaded(`讨论`),
			bareHeaded(`分析`),
		),
	},
	{
		name: SectionConclusion,
		patterns: compile(
			headed(`conclusions?`),
			romanHeaded(`conclusions?`),
			headed(`concluding\s+remarks?`),
			headed(`summary\s+and\s+conclusions?`),
			headed(`conclusions?\s+and\s+future\s+works?`),
			headed(`conclusions?\s+and\s+outlook`),
			numbered(`summary`),
			headed(`final\s+remarks?`),
			headed(`closing\s+remarks?`),
			headed(`future\s+works?`),
			headed(`future\s+(directions?|research|perspectives?)`),
			headed(`outlook`),
			headed(`perspectives?`),
			headed(`summary\s+and\s+future\s+works?`),
			headed(`summary\s+and\s+outlook`),
			headed(`contributions?`),
			headed(`implications?`),
			bareHeaded(`结论`),
			bareHeaded(`总结`),
			bareHeaded(`结束语`),
			bareHeaded(`展望`),
			bareHeaded(`未来工作`),
			bareHeaded(`总结与展望`),
			bareHeaded(`结论与展望`),
			bareHeaded(`研究展望`),
			bareHeaded(`未来研究方向`),
			bareHeaded(`本文贡献`),
			bareHeaded(`主要贡献`),
		),
	},
}

// exclusionPatterns match end-matter boilerplate. A matching line is never a
// canonical section and terminates any section being scanned. The markerless
// forms catch boilerplate that converters emit as plain paragraphs.
var exclusionPatterns = compile(
	headed(`acknowledgements?`),
	headed(`funding`),
	headed(`declarations?`),
	headed(`references?`),
	headed(`appendix`),
	headed(`appendices`),
	headed(`bibliography`),
	headed(`competing\s+interests?`),
	headed(`author\s+contributions?`),
	headed(`data\s+availability`),
	headed(`conflict\s+of\s+interests?`),
	headed(`ethics\s+(statement|declarations?)`),
	headed(`consent\s+(for\s+publication|to\s+participate)`),
	headed(`availability\s+of\s+data\s+and\s+materials?`),
	headed(`supplementary\s+(materials?|information)`),
	headed(`abbreviations?`),
	headed(`nomenclature`),
	headed(`glossary`),
	[]string{
		`^acknowledgements?\s`,
		`^funding\s`,
		`^declarations?\s`,
		`^references?\s`,
		`^appendix\s`,
		`^appendices\s`,
		`^bibliography\s`,
		`^competing\s+interests?\s`,
		`^author\s+contributions?\s`,
		`^data\s+availability\s`,
		`^conflict\s+of\s+interests?\s`,
		`^ethics\s+(statement|declarations?)\s`,
		`^supplementary\s+(materials?|information)\s`,
	},
	headed(`致谢`),
	headed(`参考文献`),
	headed(`附录`),
	headed(`资助`),
	headed(`基金`),
	headed(`利益冲突`),
	headed(`作者贡献`),
	headed(`伦理声明`),
	headed(`补充材料`),
	headed(`缩略语`),
)
