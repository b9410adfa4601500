// 版权所有 2025 Sailor Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 config 提供 Sailor 的统一配置加载能力，支持默认值、YAML 文件
与环境变量三级覆盖。

# 概述

本包通过 Loader（Builder 模式）加载完整的 Config 结构，优先级为
默认值 → YAML 文件 → 环境变量。环境变量名由前缀（默认 SAILOR）
与结构体 env tag 拼接而成，例如 SAILOR_SLACK_BOT_TOKEN。

# 核心类型

  - Config：完整配置结构，包含 Slack、Redis、Providers、Server、
    Log 与 Telemetry 六个配置段。
  - Loader：配置加载器，支持 WithConfigPath / WithEnvPrefix /
    WithValidator 链式调用。

# 主要能力

  - 三级覆盖：默认值、YAML 文件与环境变量逐层覆盖。
  - 反射注入：通过 env tag 递归解析嵌套结构体字段。
  - 配置验证：Validate 检查 Slack 令牌、限速与遥测端点。
  - 可选存储：Redis Addr 为空时 StateStoreEnabled 返回 false。
*/
package config
